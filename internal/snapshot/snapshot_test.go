package snapshot

import (
	"context"
	"encoding/json"
	"testing"
	"time"
)

func TestMemoryCacheDiscardsOlderGeneration(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	stored, err := c.Put(ctx, Snapshot{Key: "admin:stats", Generation: 5, Value: json.RawMessage(`{"n":5}`)})
	if err != nil || !stored {
		t.Fatalf("first put: stored=%v err=%v", stored, err)
	}
	stored, err = c.Put(ctx, Snapshot{Key: "admin:stats", Generation: 3, Value: json.RawMessage(`{"n":3}`)})
	if err != nil || stored {
		t.Fatalf("older put: stored=%v err=%v", stored, err)
	}
	got, ok, err := c.Get(ctx, "admin:stats")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Generation != 5 || string(got.Value) != `{"n":5}` {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	if _, ok, _ := c.Get(ctx, "missing"); ok {
		t.Fatalf("missing key reported present")
	}
}

func TestGenerationsIncreaseEvenWithFrozenClock(t *testing.T) {
	frozen := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	g := NewGenerations(func() time.Time { return frozen })
	a, b, c := g.Next(), g.Next(), g.Next()
	if !(a < b && b < c) {
		t.Fatalf("generations not increasing: %d %d %d", a, b, c)
	}
	if a != frozen.UnixMicro() {
		t.Fatalf("first generation should follow the clock: %d", a)
	}
}

package observability

import (
	"context"
	"testing"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = abc , broken, =x, team=dash ")
	if len(got) != 2 || got["api-key"] != "abc" || got["team"] != "dash" {
		t.Fatalf("ParseHeaders: %v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("empty headers should be nil")
	}
}

func TestParseRatio(t *testing.T) {
	cases := map[string]float64{"0.25": 0.25, "7": 1, "-1": 0, "nope": 0.1}
	for in, want := range cases {
		if got := ParseRatio(in, 0.1); got != want {
			t.Fatalf("ParseRatio(%q): want=%v got=%v", in, want, got)
		}
	}
}

func TestInitOTelDisabledReturnsNoopShutdown(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{Enabled: false})
	if shutdown == nil {
		t.Fatalf("shutdown must not be nil")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown: %v", err)
	}
}

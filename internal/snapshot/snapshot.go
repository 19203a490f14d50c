package snapshot

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Snapshot is the last computed value of one dashboard view.
type Snapshot struct {
	Key        string          `json:"key"`
	Generation int64           `json:"generation"`
	UpdatedAt  time.Time       `json:"updated_at"`
	Value      json.RawMessage `json:"value"`
}

// Cache stores the latest snapshot per key. Put must discard a snapshot whose
// generation is older than the stored one and report whether it was stored.
type Cache interface {
	Put(ctx context.Context, snap Snapshot) (bool, error)
	Get(ctx context.Context, key string) (Snapshot, bool, error)
}

type memoryCache struct {
	mu    sync.RWMutex
	items map[string]Snapshot
}

func NewMemoryCache() Cache {
	return &memoryCache{items: map[string]Snapshot{}}
}

func (c *memoryCache) Put(ctx context.Context, snap Snapshot) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.items[snap.Key]; ok && cur.Generation > snap.Generation {
		return false, nil
	}
	c.items[snap.Key] = snap
	return true, nil
}

func (c *memoryCache) Get(ctx context.Context, key string) (Snapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap, ok := c.items[key]
	return snap, ok, nil
}

// Generations hands out increasing generation numbers. They are wall clock
// microseconds, so snapshots written by different processes still order by
// start time, and they never repeat within a process.
type Generations struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewGenerations(now func() time.Time) *Generations {
	if now == nil {
		now = time.Now
	}
	return &Generations{now: now}
}

func (g *Generations) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	n := g.now().UnixMicro()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return n
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/snapshot"
)

type SnapshotCache interface {
	snapshot.Cache
	Close() error
}

type SnapshotCacheConfig struct {
	Addr   string
	Prefix string
	TTL    time.Duration
}

type snapshotCache struct {
	log    *logger.Logger
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// putIfNewer stores ARGV[1] unless the stored snapshot has a higher
// generation. Returns 1 when stored.
var putIfNewer = goredis.NewScript(`
local cur = redis.call('GET', KEYS[1])
if cur then
  local ok, decoded = pcall(cjson.decode, cur)
  if ok and decoded and tonumber(decoded.generation) and tonumber(decoded.generation) > tonumber(ARGV[2]) then
    return 0
  end
end
if tonumber(ARGV[3]) > 0 then
  redis.call('SET', KEYS[1], ARGV[1], 'PX', ARGV[3])
else
  redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

func NewSnapshotCache(log *logger.Logger, cfg SnapshotCacheConfig) (SnapshotCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "codequest:dashboard:"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &snapshotCache{
		log:    log.With("service", "RedisSnapshotCache"),
		rdb:    rdb,
		prefix: prefix,
		ttl:    cfg.TTL,
	}, nil
}

func (c *snapshotCache) Put(ctx context.Context, snap snapshot.Snapshot) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, fmt.Errorf("redis snapshot cache not initialized")
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return false, fmt.Errorf("encode snapshot: %w", err)
	}
	stored, err := putIfNewer.Run(ctx, c.rdb, []string{c.prefix + snap.Key}, raw, snap.Generation, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis put snapshot: %w", err)
	}
	if stored == 0 {
		c.log.Debug("Discarded stale snapshot", "key", snap.Key, "generation", snap.Generation)
	}
	return stored == 1, nil
}

func (c *snapshotCache) Get(ctx context.Context, key string) (snapshot.Snapshot, bool, error) {
	if c == nil || c.rdb == nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("redis snapshot cache not initialized")
	}
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return snapshot.Snapshot{}, false, nil
	}
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("redis get snapshot: %w", err)
	}
	var snap snapshot.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.log.Warn("bad redis snapshot payload", "key", key, "error", err)
		return snapshot.Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (c *snapshotCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

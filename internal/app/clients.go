package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/codequest-backend/internal/clients/redis"
	"github.com/yungbote/codequest-backend/internal/dashboard"
	"github.com/yungbote/codequest-backend/internal/data/db"
	"github.com/yungbote/codequest-backend/internal/data/repos"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/snapshot"
	"github.com/yungbote/codequest-backend/internal/upstream"
)

// Source satisfies every dashboard source interface.
type Source interface {
	dashboard.UserSource
	dashboard.QuestionSource
	dashboard.ProgressSource
	dashboard.LanguageSource
}

type Clients struct {
	Source Source
	// DB is set only for the database source.
	DB            *gorm.DB
	SnapshotCache snapshot.Cache
	redisCache    redis.SnapshotCache
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...", "source", cfg.Source)

	var out Clients
	switch cfg.Source {
	case SourceDB:
		theDB, err := db.Open(log, cfg.DB)
		if err != nil {
			return Clients{}, fmt.Errorf("init database: %w", err)
		}
		out.DB = theDB
		out.Source = repos.NewSource(theDB, log)
	default:
		client, err := upstream.NewClient(log, cfg.Upstream)
		if err != nil {
			return Clients{}, fmt.Errorf("init upstream client: %w", err)
		}
		out.Source = client
	}

	// Redis
	if cfg.RedisAddr != "" {
		cache, err := redis.NewSnapshotCache(log, redis.SnapshotCacheConfig{
			Addr: cfg.RedisAddr,
			TTL:  cfg.SnapshotTTL,
		})
		if err != nil {
			out.Close()
			return Clients{}, fmt.Errorf("init redis snapshot cache: %w", err)
		}
		out.redisCache = cache
		out.SnapshotCache = cache
	} else {
		out.SnapshotCache = snapshot.NewMemoryCache()
	}

	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.redisCache != nil {
		_ = c.redisCache.Close()
	}
	if c.DB != nil {
		if sqlDB, err := c.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yungbote/codequest-backend/internal/dashboard"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/snapshot"
)

const (
	ViewStats        = "stats"
	ViewRecent       = "recent"
	ViewAchievements = "achievements"

	AdminStatsKey     = "admin:stats"
	AdminLanguagesKey = "admin:languages"
)

// UserViewKey is the snapshot key of one user-scoped view.
func UserViewKey(userID, view string) string {
	return "user:" + userID + ":" + view
}

func IsUserView(view string) bool {
	switch view {
	case ViewStats, ViewRecent, ViewAchievements:
		return true
	}
	return false
}

// DashboardService serves dashboard aggregates and remembers the latest result
// of each view. When two computations of a view overlap, the one that started
// last is kept regardless of completion order.
type DashboardService interface {
	UserStats(ctx context.Context, userID, username string) dashboard.UserStats
	RecentQuestions(ctx context.Context, userID string) []dashboard.RecentQuestion
	Achievements(ctx context.Context, userID, username string) dashboard.Achievements
	AdminStats(ctx context.Context) dashboard.AdminStats
	LanguageDistribution(ctx context.Context) dashboard.Distribution
	SolvedHistory(ctx context.Context, userID string, q PageQuery) Page[dashboard.RecentQuestion]
	Latest(ctx context.Context, key string) (snapshot.Snapshot, bool, error)
	// RefreshAdmin recomputes the admin views.
	RefreshAdmin(ctx context.Context)
}

type dashboardService struct {
	log   *logger.Logger
	agg   dashboard.Aggregator
	cache snapshot.Cache
	gens  *snapshot.Generations
	now   func() time.Time
}

func NewDashboardService(log *logger.Logger, agg dashboard.Aggregator, cache snapshot.Cache) (DashboardService, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if agg == nil {
		return nil, fmt.Errorf("dashboard aggregator required")
	}
	if cache == nil {
		cache = snapshot.NewMemoryCache()
	}
	return &dashboardService{
		log:   log.With("service", "DashboardService"),
		agg:   agg,
		cache: cache,
		gens:  snapshot.NewGenerations(time.Now),
		now:   time.Now,
	}, nil
}

func (s *dashboardService) UserStats(ctx context.Context, userID, username string) dashboard.UserStats {
	gen := s.gens.Next()
	out := s.agg.UserDashboardStats(ctx, userID, username)
	s.record(ctx, UserViewKey(userScope(userID, username), ViewStats), gen, out)
	return out
}

func (s *dashboardService) RecentQuestions(ctx context.Context, userID string) []dashboard.RecentQuestion {
	gen := s.gens.Next()
	out := s.agg.RecentQuestions(ctx, userID)
	s.record(ctx, UserViewKey(userID, ViewRecent), gen, out)
	return out
}

func (s *dashboardService) Achievements(ctx context.Context, userID, username string) dashboard.Achievements {
	gen := s.gens.Next()
	out := s.agg.UserAchievements(ctx, username)
	s.record(ctx, UserViewKey(userScope(userID, username), ViewAchievements), gen, out)
	return out
}

func (s *dashboardService) AdminStats(ctx context.Context) dashboard.AdminStats {
	gen := s.gens.Next()
	out := s.agg.AdminDashboardStats(ctx)
	s.record(ctx, AdminStatsKey, gen, out)
	return out
}

func (s *dashboardService) LanguageDistribution(ctx context.Context) dashboard.Distribution {
	gen := s.gens.Next()
	out := s.agg.LanguageDistribution(ctx)
	s.record(ctx, AdminLanguagesKey, gen, out)
	return out
}

func (s *dashboardService) RefreshAdmin(ctx context.Context) {
	s.AdminStats(ctx)
	s.LanguageDistribution(ctx)
}

func (s *dashboardService) SolvedHistory(ctx context.Context, userID string, q PageQuery) Page[dashboard.RecentQuestion] {
	q = q.Normalize()
	all := s.agg.SolvedQuestions(ctx, userID)
	if q.Q != "" {
		needle := strings.ToLower(q.Q)
		filtered := make([]dashboard.RecentQuestion, 0, len(all))
		for _, rq := range all {
			if strings.Contains(strings.ToLower(rq.Title), needle) || strings.Contains(strings.ToLower(rq.Language), needle) {
				filtered = append(filtered, rq)
			}
		}
		all = filtered
	}
	return Paginate(all, q)
}

func (s *dashboardService) Latest(ctx context.Context, key string) (snapshot.Snapshot, bool, error) {
	snap, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		return snapshot.Snapshot{}, false, fmt.Errorf("read snapshot %s: %w", key, err)
	}
	return snap, ok, nil
}

// record stores a computed view. Cache failures are logged, not returned.
func (s *dashboardService) record(ctx context.Context, key string, gen int64, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("Failed to encode dashboard snapshot", "key", key, "error", err)
		return
	}
	stored, err := s.cache.Put(ctx, snapshot.Snapshot{Key: key, Generation: gen, UpdatedAt: s.now().UTC(), Value: raw})
	if err != nil {
		s.log.Warn("Failed to store dashboard snapshot", "key", key, "error", err)
		return
	}
	if !stored {
		s.log.Debug("Superseded dashboard snapshot dropped", "key", key, "generation", gen)
	}
}

func userScope(userID, username string) string {
	if id := strings.TrimSpace(userID); id != "" {
		return id
	}
	return strings.TrimSpace(username)
}

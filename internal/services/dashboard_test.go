package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/yungbote/codequest-backend/internal/dashboard"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/snapshot"
)

type fakeAggregator struct {
	mu         sync.Mutex
	adminCalls int
	langCalls  int
	adminStats func(call int) dashboard.AdminStats
	solved     []dashboard.RecentQuestion
	userStats  dashboard.UserStats
	recent     []dashboard.RecentQuestion
	achieve    dashboard.Achievements
	achieveFor []string
}

func (f *fakeAggregator) UserDashboardStats(ctx context.Context, userID, username string) dashboard.UserStats {
	return f.userStats
}

func (f *fakeAggregator) RecentQuestions(ctx context.Context, userID string) []dashboard.RecentQuestion {
	return f.recent
}

func (f *fakeAggregator) UserAchievements(ctx context.Context, username string) dashboard.Achievements {
	f.mu.Lock()
	f.achieveFor = append(f.achieveFor, username)
	f.mu.Unlock()
	return f.achieve
}

func (f *fakeAggregator) AdminDashboardStats(ctx context.Context) dashboard.AdminStats {
	f.mu.Lock()
	f.adminCalls++
	call := f.adminCalls
	f.mu.Unlock()
	if f.adminStats != nil {
		return f.adminStats(call)
	}
	return dashboard.AdminStats{TotalUsers: call}
}

func (f *fakeAggregator) LanguageDistribution(ctx context.Context) dashboard.Distribution {
	f.mu.Lock()
	f.langCalls++
	f.mu.Unlock()
	return dashboard.FallbackDistribution()
}

func (f *fakeAggregator) SolvedQuestions(ctx context.Context, userID string) []dashboard.RecentQuestion {
	return f.solved
}

func (f *fakeAggregator) calls() (int, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.adminCalls, f.langCalls
}

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	return log
}

func newTestDashboardService(t *testing.T, agg dashboard.Aggregator, cache snapshot.Cache) DashboardService {
	t.Helper()
	svc, err := NewDashboardService(newTestLogger(t), agg, cache)
	if err != nil {
		t.Fatalf("NewDashboardService: %v", err)
	}
	return svc
}

func TestNewDashboardServiceRequiresDeps(t *testing.T) {
	if _, err := NewDashboardService(nil, &fakeAggregator{}, nil); err == nil {
		t.Fatalf("expected error without logger")
	}
	if _, err := NewDashboardService(newTestLogger(t), nil, nil); err == nil {
		t.Fatalf("expected error without aggregator")
	}
}

func TestDashboardServiceRecordsLatestSnapshot(t *testing.T) {
	agg := &fakeAggregator{userStats: dashboard.UserStats{CurrentStreak: "3 days", SolvedQuestions: 9}}
	svc := newTestDashboardService(t, agg, nil)
	ctx := context.Background()

	if _, ok, err := svc.Latest(ctx, UserViewKey("u1", ViewStats)); err != nil || ok {
		t.Fatalf("expected no snapshot before first compute: ok=%v err=%v", ok, err)
	}
	got := svc.UserStats(ctx, "u1", "ada")
	if got.SolvedQuestions != 9 {
		t.Fatalf("UserStats passthrough: %+v", got)
	}
	snap, ok, err := svc.Latest(ctx, UserViewKey("u1", ViewStats))
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	var decoded dashboard.UserStats
	if err := json.Unmarshal(snap.Value, &decoded); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if decoded != got {
		t.Fatalf("snapshot: want=%+v got=%+v", got, decoded)
	}
}

func TestDashboardServiceAchievementsKeyFallsBackToUsername(t *testing.T) {
	agg := &fakeAggregator{achieve: dashboard.Achievements{BadgesEarned: 2}}
	svc := newTestDashboardService(t, agg, nil)
	svc.Achievements(context.Background(), "", "ada")
	if _, ok, _ := svc.Latest(context.Background(), UserViewKey("ada", ViewAchievements)); !ok {
		t.Fatalf("expected snapshot keyed by username")
	}
	if len(agg.achieveFor) != 1 || agg.achieveFor[0] != "ada" {
		t.Fatalf("achievements looked up for %v", agg.achieveFor)
	}
}

func TestDashboardServiceLastStartedWins(t *testing.T) {
	release := make(chan struct{})
	firstStarted := make(chan struct{})
	agg := &fakeAggregator{adminStats: func(call int) dashboard.AdminStats {
		if call == 1 {
			close(firstStarted)
			<-release
		}
		return dashboard.AdminStats{TotalUsers: call}
	}}
	svc := newTestDashboardService(t, agg, nil)
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.AdminStats(ctx)
	}()
	<-firstStarted
	svc.AdminStats(ctx)
	close(release)
	<-done

	snap, ok, err := svc.Latest(ctx, AdminStatsKey)
	if err != nil || !ok {
		t.Fatalf("Latest: ok=%v err=%v", ok, err)
	}
	var got dashboard.AdminStats
	if err := json.Unmarshal(snap.Value, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.TotalUsers != 2 {
		t.Fatalf("stale refresh overwrote newer one: TotalUsers=%d", got.TotalUsers)
	}
}

func TestSolvedHistoryFiltersAndPaginates(t *testing.T) {
	var solved []dashboard.RecentQuestion
	for i := 0; i < 12; i++ {
		lang := "Python"
		if i%3 == 0 {
			lang = "Go"
		}
		solved = append(solved, dashboard.RecentQuestion{Title: "Problem", Language: lang})
	}
	solved[5].Title = "Binary Search"
	svc := newTestDashboardService(t, &fakeAggregator{solved: solved}, nil)
	ctx := context.Background()

	page := svc.SolvedHistory(ctx, "u1", PageQuery{Page: 2, Size: 5})
	if page.Total != 12 || page.TotalPages != 3 || len(page.Items) != 5 || page.Page != 2 {
		t.Fatalf("unfiltered page: %+v", page)
	}
	page = svc.SolvedHistory(ctx, "u1", PageQuery{Q: " go "})
	if page.Total != 4 || page.Size != DefaultPageSize {
		t.Fatalf("language filter: total=%d size=%d", page.Total, page.Size)
	}
	page = svc.SolvedHistory(ctx, "u1", PageQuery{Q: "BINARY"})
	if page.Total != 1 || page.Items[0].Title != "Binary Search" {
		t.Fatalf("title filter: %+v", page)
	}
}

func TestRefreshAdminUpdatesBothAdminViews(t *testing.T) {
	agg := &fakeAggregator{}
	svc := newTestDashboardService(t, agg, nil)
	svc.RefreshAdmin(context.Background())
	for _, key := range []string{AdminStatsKey, AdminLanguagesKey} {
		if _, ok, _ := svc.Latest(context.Background(), key); !ok {
			t.Fatalf("missing snapshot %s", key)
		}
	}
	if a, l := agg.calls(); a != 1 || l != 1 {
		t.Fatalf("calls: admin=%d languages=%d", a, l)
	}
}

func TestRefresherStopsOnContextCancel(t *testing.T) {
	agg := &fakeAggregator{}
	svc := newTestDashboardService(t, agg, nil)
	r := NewRefresher(newTestLogger(t), svc, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	r.Start(ctx)
	r.Start(ctx)
	done := r.Done()

	deadline := time.After(2 * time.Second)
	for {
		if a, _ := agg.calls(); a >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("refresher did not tick")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("refresher goroutine did not exit")
	}

	a, _ := agg.calls()
	time.Sleep(40 * time.Millisecond)
	if after, _ := agg.calls(); after != a {
		t.Fatalf("refresh ran after cancel: %d -> %d", a, after)
	}
	r.Stop()
}

func TestRefresherStopWaits(t *testing.T) {
	agg := &fakeAggregator{}
	r := NewRefresher(newTestLogger(t), newTestDashboardService(t, agg, nil), time.Hour)
	r.Start(context.Background())
	done := r.Done()
	r.Stop()
	select {
	case <-done:
	default:
		t.Fatalf("Stop returned before the loop exited")
	}
	if a, l := agg.calls(); a != 1 || l != 1 {
		t.Fatalf("expected one immediate refresh, got admin=%d languages=%d", a, l)
	}
	r.Stop()
}

func TestRefresherFirstRunSurvivesCancelledParent(t *testing.T) {
	agg := &fakeAggregator{}
	r := NewRefresher(newTestLogger(t), newTestDashboardService(t, agg, nil), time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Start(ctx)
	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("refresher did not exit on a cancelled context")
	}
	if a, _ := agg.calls(); a != 1 {
		t.Fatalf("expected the initial refresh to run, got %d", a)
	}
	r.Stop()
}

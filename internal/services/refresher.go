package services

import (
	"context"
	"sync"
	"time"

	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

const DefaultRefreshInterval = 5 * time.Minute

// Refresher recomputes the admin dashboard views on a fixed interval.
type Refresher struct {
	log      *logger.Logger
	svc      DashboardService
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewRefresher(log *logger.Logger, svc DashboardService, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &Refresher{
		log:      log.With("service", "DashboardRefresher"),
		svc:      svc,
		interval: interval,
	}
}

// Start runs one refresh immediately, then one per interval until ctx is
// cancelled or Stop is called. The first refresh always completes, even when
// Stop follows right away. Calling Start on a running refresher is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done != nil {
		select {
		case <-r.done:
		default:
			return
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	r.cancel, r.done = cancel, done

	go func() {
		defer close(done)
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		r.run(context.WithoutCancel(ctx))
		for {
			select {
			case <-ctx.Done():
				r.log.Debug("Dashboard refresher stopped")
				return
			case <-ticker.C:
				r.refresh(ctx)
			}
		}
	}()
	r.log.Info("Dashboard refresher started", "interval", r.interval.String())
}

// Stop cancels the loop and waits for it to exit.
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Done is closed when the running loop exits; nil when not started.
func (r *Refresher) Done() <-chan struct{} {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *Refresher) refresh(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	r.run(ctx)
}

func (r *Refresher) run(ctx context.Context) {
	start := time.Now()
	r.svc.RefreshAdmin(ctx)
	r.log.Debug("Dashboard views refreshed", "duration_ms", time.Since(start).Milliseconds())
}

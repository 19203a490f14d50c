package app

import (
	"fmt"

	"github.com/yungbote/codequest-backend/internal/dashboard"
	"github.com/yungbote/codequest-backend/internal/observability"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/services"
)

type Services struct {
	Auth      services.AuthService
	Dashboard services.DashboardService
	Refresher *services.Refresher
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, metrics *observability.Metrics) (Services, error) {
	log.Info("Wiring services...")

	auth, err := services.NewAuthService(log, cfg.JWTSecretKey)
	if err != nil {
		return Services{}, fmt.Errorf("init auth service: %w", err)
	}

	deps := dashboard.Deps{
		Log:       log,
		Users:     clients.Source,
		Questions: clients.Source,
		Progress:  clients.Source,
		Languages: clients.Source,
		Location:  cfg.Location,
	}
	if metrics != nil {
		deps.Observer = metrics
	}
	agg := dashboard.New(deps)

	dash, err := services.NewDashboardService(log, agg, clients.SnapshotCache)
	if err != nil {
		return Services{}, fmt.Errorf("init dashboard service: %w", err)
	}

	return Services{
		Auth:      auth,
		Dashboard: dash,
		Refresher: services.NewRefresher(log, dash, cfg.RefreshInterval),
	}, nil
}

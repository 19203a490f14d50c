package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/codequest-backend/internal/http"
	httpH "github.com/yungbote/codequest-backend/internal/http/handlers"
	httpMW "github.com/yungbote/codequest-backend/internal/http/middleware"
	"github.com/yungbote/codequest-backend/internal/observability"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health    *httpH.HealthHandler
	Dashboard *httpH.DashboardHandler
	Admin     *httpH.AdminHandler
}

func wireHandlers(log *logger.Logger, services Services, metrics *observability.Metrics) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:    httpH.NewHealthHandler(metrics),
		Dashboard: httpH.NewDashboardHandler(log, services.Dashboard),
		Admin:     httpH.NewAdminHandler(log, services.Dashboard),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:              log,
		Metrics:          metrics,
		ServiceName:      cfg.Otel.ServiceName,
		TracingEnabled:   cfg.Otel.Enabled,
		CORSOrigins:      cfg.CORSOrigins,
		AuthMiddleware:   middleware.Auth,
		HealthHandler:    handlers.Health,
		DashboardHandler: handlers.Dashboard,
		AdminHandler:     handlers.Admin,
	})
}

package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/codequest-backend/internal/http/handlers"
	httpMW "github.com/yungbote/codequest-backend/internal/http/middleware"
	"github.com/yungbote/codequest-backend/internal/observability"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler    *httpH.HealthHandler
	DashboardHandler *httpH.DashboardHandler
	AdminHandler     *httpH.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		name := cfg.ServiceName
		if name == "" {
			name = "codequest-dashboard"
		}
		r.Use(otelgin.Middleware(name))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		if cfg.Metrics != nil {
			r.GET("/metrics", cfg.HealthHandler.Metrics)
		}
	}

	api := r.Group("/api")
	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Dashboard
	if cfg.DashboardHandler != nil {
		protected.GET("/dashboard/stats", cfg.DashboardHandler.GetStats)
		protected.GET("/dashboard/recent", cfg.DashboardHandler.GetRecent)
		protected.GET("/dashboard/achievements", cfg.DashboardHandler.GetAchievements)
		protected.GET("/dashboard/solved", cfg.DashboardHandler.ListSolved)
		protected.GET("/dashboard/latest/:view", cfg.DashboardHandler.GetLatest)
	}

	// Admin
	if cfg.AdminHandler != nil && cfg.AuthMiddleware != nil {
		admin := protected.Group("/admin/dashboard")
		admin.Use(cfg.AuthMiddleware.RequireAdmin())
		admin.GET("/stats", cfg.AdminHandler.GetStats)
		admin.GET("/languages", cfg.AdminHandler.GetLanguages)
		admin.POST("/refresh", cfg.AdminHandler.Refresh)
	}

	return r
}

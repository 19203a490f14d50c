package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/codequest-backend/internal/http/response"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/services"
)

type AdminHandler struct {
	log *logger.Logger
	svc services.DashboardService
}

func NewAdminHandler(log *logger.Logger, svc services.DashboardService) *AdminHandler {
	return &AdminHandler{log: log.With("handler", "AdminHandler"), svc: svc}
}

// GET /api/admin/dashboard/stats
func (h *AdminHandler) GetStats(c *gin.Context) {
	response.RespondOK(c, h.svc.AdminStats(c.Request.Context()))
}

// GET /api/admin/dashboard/languages
func (h *AdminHandler) GetLanguages(c *gin.Context) {
	response.RespondOK(c, h.svc.LanguageDistribution(c.Request.Context()))
}

// POST /api/admin/dashboard/refresh
func (h *AdminHandler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()
	h.svc.RefreshAdmin(ctx)
	h.log.Info("Admin dashboard refreshed on demand")

	out := gin.H{}
	for key, name := range map[string]string{
		services.AdminStatsKey:     "stats",
		services.AdminLanguagesKey: "languages",
	} {
		if snap, ok, err := h.svc.Latest(ctx, key); err == nil && ok {
			out[name] = gin.H{"generation": snap.Generation, "updatedAt": snap.UpdatedAt}
		}
	}
	response.RespondOK(c, gin.H{"refreshed": true, "snapshots": out})
}

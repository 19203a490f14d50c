package handlers

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/codequest-backend/internal/http/response"
	"github.com/yungbote/codequest-backend/internal/platform/apierr"
	"github.com/yungbote/codequest-backend/internal/platform/ctxutil"
	"github.com/yungbote/codequest-backend/internal/platform/logger"
	"github.com/yungbote/codequest-backend/internal/services"
)

type DashboardHandler struct {
	log *logger.Logger
	svc services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, svc services.DashboardService) *DashboardHandler {
	return &DashboardHandler{log: log.With("handler", "DashboardHandler"), svc: svc}
}

// GET /api/dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	rd, ok := profileCaller(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.svc.UserStats(c.Request.Context(), rd.UserID, rd.Username))
}

// GET /api/dashboard/recent
func (h *DashboardHandler) GetRecent(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.svc.RecentQuestions(c.Request.Context(), rd.UserID))
}

// GET /api/dashboard/achievements
func (h *DashboardHandler) GetAchievements(c *gin.Context) {
	rd, ok := profileCaller(c)
	if !ok {
		return
	}
	response.RespondOK(c, h.svc.Achievements(c.Request.Context(), rd.UserID, rd.Username))
}

// GET /api/dashboard/solved?page=&size=&q=
func (h *DashboardHandler) ListSolved(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	page, err := queryInt(c, "page")
	if err != nil {
		response.AbortWithError(c, apierr.BadRequest("invalid_page", err))
		return
	}
	size, err := queryInt(c, "size")
	if err != nil {
		response.AbortWithError(c, apierr.BadRequest("invalid_size", err))
		return
	}
	q := services.PageQuery{Page: page, Size: size, Q: c.Query("q")}
	response.RespondOK(c, h.svc.SolvedHistory(c.Request.Context(), rd.UserID, q))
}

// GET /api/dashboard/latest/:view
func (h *DashboardHandler) GetLatest(c *gin.Context) {
	rd, ok := caller(c)
	if !ok {
		return
	}
	view := strings.ToLower(strings.TrimSpace(c.Param("view")))
	if !services.IsUserView(view) {
		response.AbortWithError(c, apierr.BadRequest("invalid_view", errors.New("view must be stats, recent or achievements")))
		return
	}
	scope := rd.UserID
	if scope == "" {
		scope = rd.Username
	}
	respondLatest(c, h.log, h.svc, services.UserViewKey(scope, view))
}

func respondLatest(c *gin.Context, log *logger.Logger, svc services.DashboardService, key string) {
	snap, found, err := svc.Latest(c.Request.Context(), key)
	if err != nil {
		log.Warn("Snapshot lookup failed", "key", key, "error", err)
	}
	if err != nil || !found {
		response.AbortWithError(c, apierr.NotFound("snapshot_not_found"))
		return
	}
	response.RespondOK(c, gin.H{
		"key":        snap.Key,
		"generation": snap.Generation,
		"updatedAt":  snap.UpdatedAt,
		"value":      json.RawMessage(snap.Value),
	})
}

func caller(c *gin.Context) (*ctxutil.RequestData, bool) {
	rd := ctxutil.GetRequestData(c.Request.Context())
	if rd == nil || (rd.UserID == "" && rd.Username == "") {
		response.AbortWithError(c, apierr.Unauthorized(errors.New("missing or invalid token")))
		return nil, false
	}
	return rd, true
}

// profileCaller is caller for views backed by the user profile, which is
// looked up by username.
func profileCaller(c *gin.Context) (*ctxutil.RequestData, bool) {
	rd, ok := caller(c)
	if !ok {
		return nil, false
	}
	if strings.TrimSpace(rd.Username) == "" {
		response.AbortWithError(c, apierr.Unauthorized(errors.New("token has no username claim")))
		return nil, false
	}
	return rd, true
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(name + " must be an integer")
	}
	return n, nil
}

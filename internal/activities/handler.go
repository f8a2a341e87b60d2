package activities

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the activities service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches activity routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activities/today", h.today)
	rg.GET("/activities/weekly", h.weekly)
}

func (h *Handler) today(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	summary, err := h.Svc.Today(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch activity summary", nil)
		return
	}
	respond.OK(c, summary)
}

func (h *Handler) weekly(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	summary, err := h.Svc.Weekly(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch weekly summary", nil)
		return
	}
	respond.OK(c, summary)
}

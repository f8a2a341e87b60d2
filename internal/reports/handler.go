package reports

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/shared/telemetry"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
var timeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Handler wires HTTP handlers to the reports service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/daily", h.daily)
	rg.POST("/reports/generate", h.generate)
	rg.POST("/reports/export", h.export)
	rg.GET("/reports/export/:id", h.downloadExport)
}

func (h *Handler) daily(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	date, ok := resolveDate(c)
	if !ok {
		return
	}

	report, err := h.Svc.Daily(c.Request.Context(), userID, date)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch report", nil)
		return
	}
	c.Set("reportDate", date)
	respond.OK(c, report)
}

type generateRequest struct {
	Date          string `json:"date"`
	Scheduled     bool   `json:"scheduled"`
	ScheduledTime string `json:"scheduled_time"`
}

func (h *Handler) generate(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req generateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	}
	if !dateRe.MatchString(req.Date) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", nil)
		return
	}
	if req.Scheduled && !timeRe.MatchString(req.ScheduledTime) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "scheduled_time must be HH:MM", nil)
		return
	}

	if err := h.Svc.Generate(c.Request.Context(), userID, req.Date, req.Scheduled, req.ScheduledTime); err != nil {
		telemetry.Error("report.dispatch_failed", map[string]any{
			"user_id":     userID,
			"report_date": req.Date,
			"error":       err.Error(),
		})
		respond.Error(c, http.StatusBadGateway, "webhook_failed", "Failed to request report. Please try again.", nil)
		return
	}

	respond.JSON(c, http.StatusAccepted, gin.H{
		"dispatched": true,
		"date":       req.Date,
		"scheduled":  req.Scheduled,
	})
}

type exportRequest struct {
	Date string `json:"date"`
}

func (h *Handler) export(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var req exportRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
			return
		}
	}
	if req.Date == "" {
		req.Date = time.Now().UTC().Format("2006-01-02")
	}
	if !dateRe.MatchString(req.Date) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", nil)
		return
	}

	export, err := h.Svc.Export(c.Request.Context(), userID, req.Date)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to export report", nil)
		return
	}

	respond.JSON(c, http.StatusCreated, gin.H{
		"exportId":   export.ID,
		"storageKey": export.StorageKey,
		"sizeBytes":  export.SizeBytes,
		"date":       export.ReportDate,
	})
}

func (h *Handler) downloadExport(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	exportID := c.Param("id")
	if exportID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "export id is required", nil)
		return
	}

	export, body, err := h.Svc.OpenExport(c.Request.Context(), userID, exportID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "export not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to open export", nil)
		return
	}
	defer body.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=report_%s.json", export.ReportDate))
	c.DataFromReader(http.StatusOK, export.SizeBytes, "application/json", body, nil)
}

func resolveDate(c *gin.Context) (string, bool) {
	date := c.Query("date")
	if date == "" {
		return time.Now().UTC().Format("2006-01-02"), true
	}
	if !dateRe.MatchString(date) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "date must be YYYY-MM-DD", nil)
		return "", false
	}
	return date, true
}

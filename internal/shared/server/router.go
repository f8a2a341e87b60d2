package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/activities"
	googleauth "coach-backend/internal/auth"
	"coach-backend/internal/reports"
	"coach-backend/internal/shared/server/middleware"
	"coach-backend/internal/shared/server/respond"
	"coach-backend/internal/users"
)

// Deps carries the wired handlers the router exposes.
type Deps struct {
	Env             string
	CORSAllowOrigin []string
	GoogleAuth      *googleauth.GoogleService
	Users           *users.Handler
	Reports         *reports.Handler
	Activities      *activities.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(d.CORSAllowOrigin),
		middleware.Auth(),
		generateRateLimit(),
	)

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	if d.GoogleAuth != nil {
		d.GoogleAuth.RegisterRoutes(api)
	}
	if d.Users != nil {
		d.Users.RegisterRoutes(api)
	}
	if d.Reports != nil {
		d.Reports.RegisterRoutes(api)
	}
	if d.Activities != nil {
		d.Activities.RegisterRoutes(api)
	}

	return r
}

// generateRateLimit throttles report generation per user so a stuck UI
// cannot flood the automation webhook.
func generateRateLimit() gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"generate": {Rate: 0.2, Burst: 3},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/reports/generate") {
				return "generate"
			}
			return ""
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

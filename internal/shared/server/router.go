package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jobapply-backend/internal/accounts"
	"jobapply-backend/internal/resumetypes"
	"jobapply-backend/internal/shared/config"
	"jobapply-backend/internal/shared/metrics"
	"jobapply-backend/internal/shared/server/middleware"
	"jobapply-backend/internal/shared/server/respond"
	"jobapply-backend/internal/submissions"
	"jobapply-backend/internal/web"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config             config.Config
	ResumeTypesHandler *resumetypes.Handler
	SubmissionsHandler *submissions.Handler
	AccountsHandler    *accounts.Handler
	GoogleAuth         *accounts.GoogleService
	WebHandler         *web.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())

	if deps.AccountsHandler != nil {
		deps.AccountsHandler.RegisterRoutes(api)
	}
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.ResumeTypesHandler != nil {
		deps.ResumeTypesHandler.RegisterRoutes(api)
	}
	if deps.SubmissionsHandler != nil {
		deps.SubmissionsHandler.RegisterRoutes(api)
	}
	if deps.WebHandler != nil {
		deps.WebHandler.RegisterRoutes(r)
	}

	return r
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

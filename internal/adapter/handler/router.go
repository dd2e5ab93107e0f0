package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/advanced-insight/advisory-backoffice/internal/infrastructure/http/middleware"
	"github.com/advanced-insight/advisory-backoffice/pkg/config"
	"github.com/advanced-insight/advisory-backoffice/pkg/jwt"
)

// DegradationReader reports how many pipeline runs completed without
// usable fact extraction.
type DegradationReader interface {
	ExtractionDegradedCount(ctx context.Context) (int64, error)
}

// Router holds all handlers
type Router struct {
	cfg               *config.Config
	jwtManager        *jwt.Manager
	degraded          DegradationReader
	authHandler       *Auth
	clientHandler     *Client
	meetingHandler    *Meeting
	settingsHandler   *Settings
	transcriptHandler *Transcript
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, jwtManager *jwt.Manager, degraded DegradationReader, authHandler *Auth, clientHandler *Client, meetingHandler *Meeting, settingsHandler *Settings, transcriptHandler *Transcript) *Router {
	return &Router{
		cfg:               cfg,
		jwtManager:        jwtManager,
		degraded:          degraded,
		authHandler:       authHandler,
		clientHandler:     clientHandler,
		meetingHandler:    meetingHandler,
		settingsHandler:   settingsHandler,
		transcriptHandler: transcriptHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupAuthRoutes(v1)

	// Everything below requires a valid access token
	authed := v1.Group("", middleware.EchoAuth(rt.jwtManager))
	rt.setupClientRoutes(authed)
	rt.setupMeetingRoutes(authed)
	rt.setupSettingsRoutes(authed)
	rt.setupTranscriptRoutes(authed)
}

// setupAuthRoutes configures authentication routes
func (rt *Router) setupAuthRoutes(g *echo.Group) {
	authGroup := g.Group("/auth")

	authGroup.POST("/login", rt.authHandler.Login)
	authGroup.POST("/refresh", rt.authHandler.Refresh)
	authGroup.GET("/me", rt.authHandler.Me, middleware.EchoAuth(rt.jwtManager))
}

// setupClientRoutes configures client book routes
func (rt *Router) setupClientRoutes(g *echo.Group) {
	clientGroup := g.Group("/clients")

	clientGroup.POST("", rt.clientHandler.Create)
	clientGroup.GET("", rt.clientHandler.List)
	clientGroup.GET("/:id", rt.clientHandler.Get)
	clientGroup.PUT("/:id", rt.clientHandler.Update)
	clientGroup.DELETE("/:id", rt.clientHandler.Delete)
}

// setupMeetingRoutes configures meeting and upload routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetingGroup := g.Group("/meetings")

	meetingGroup.POST("", rt.meetingHandler.Create)
	meetingGroup.GET("", rt.meetingHandler.List)
	meetingGroup.GET("/client/:clientId", rt.meetingHandler.ListByClient)
	meetingGroup.GET("/:id", rt.meetingHandler.Get)
	meetingGroup.PUT("/:id", rt.meetingHandler.Update)
	meetingGroup.DELETE("/:id", rt.meetingHandler.Delete)
	meetingGroup.POST("/:id/upload", rt.meetingHandler.Upload)
}

// setupSettingsRoutes configures account settings routes
func (rt *Router) setupSettingsRoutes(g *echo.Group) {
	settingsGroup := g.Group("/settings")

	settingsGroup.POST("/change-password", rt.settingsHandler.ChangePassword)
	settingsGroup.GET("/api-settings", rt.settingsHandler.GetAPISettings)
	settingsGroup.POST("/api-settings", rt.settingsHandler.SaveAPISettings)
}

// setupTranscriptRoutes configures transcript and generation routes
func (rt *Router) setupTranscriptRoutes(g *echo.Group) {
	transcriptGroup := g.Group("/transcripts")

	transcriptGroup.GET("/meeting/:meetingId", rt.transcriptHandler.GetByMeeting)
	transcriptGroup.PUT("/:id", rt.transcriptHandler.Update)
	transcriptGroup.POST("/generate-summary", rt.transcriptHandler.GenerateSummary)
	transcriptGroup.POST("/generate-email", rt.transcriptHandler.GenerateEmail)
}

// healthCheck returns health status plus the extraction degradation
// counter, so degraded pipeline runs are visible without log access.
func (rt *Router) healthCheck(c echo.Context) error {
	resp := map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	}
	if rt.degraded != nil {
		if n, err := rt.degraded.ExtractionDegradedCount(c.Request().Context()); err == nil {
			resp["extraction_degraded"] = n
		}
	}
	return c.JSON(http.StatusOK, resp)
}

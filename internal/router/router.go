package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/cleantube/cleantube-go/internal/handler"
	"github.com/cleantube/cleantube-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Analysis   *handler.AnalysisHandler
	Selection  *handler.SelectionHandler
	Moderation *handler.ModerationHandler
	Audit      *handler.AuditHandler
	Health     *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(handler.MetricsMiddleware())

	// Health checks and metrics (before API group, no auth needed)
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// All API routes require a bearer token, forwarded upstream as-is.
	api := app.Group("/api", middleware.RequireAuth())

	analysisLimit := middleware.NewAnalysisRateLimiter().Handler()
	deleteLimit := middleware.NewDeleteRateLimiter().Handler()
	cleanupLimit := middleware.NewCleanupRateLimiter().Handler()
	statsLimit := middleware.NewStatsRateLimiter().Handler()
	exportLimit := middleware.NewExportRateLimiter().Handler()

	// Analysis routes
	api.Get("/videos/:videoId/analysis", h.Analysis.GetAnalysis, analysisLimit)
	api.Get("/videos/:videoId/evidence", h.Analysis.GetEvidence, analysisLimit)

	// Selection routes
	api.Get("/videos/:videoId/selection", h.Selection.Get)
	api.Post("/videos/:videoId/selection", h.Selection.Update)
	api.Post("/videos/:videoId/selection/group", h.Selection.ToggleGroup)
	api.Post("/videos/:videoId/selection/all", h.Selection.SelectAll)
	api.Delete("/videos/:videoId/selection", h.Selection.Clear)

	// Moderation routes
	api.Post("/videos/:videoId/delete", h.Moderation.Delete, deleteLimit)
	api.Post("/videos/:videoId/cleanup", h.Moderation.Cleanup, cleanupLimit)
	api.Delete("/comments/:commentId", h.Moderation.DeleteOne, deleteLimit)

	// Audit routes
	api.Get("/stats", h.Audit.GetStats, statsLimit)
	api.Get("/audit/export", h.Audit.Export, exportLimit)
}

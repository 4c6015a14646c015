package server

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// RegisterRoutes configures all API routes, middleware, and error handlers
func RegisterRoutes(e *echo.Echo, h *Handlers, cfg ServerConfig) {
	// Custom error handler so 404s and binding errors come back as JSON
	e.HTTPErrorHandler = NotFoundJSON()

	e.Use(SetJSONContentType)
	e.Use(SetNoCacheHeaders)

	// Optional API key authentication
	if cfg.APIKey != "" {
		e.Use(middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
			KeyLookup: "header:X-API-Key",
			Validator: func(key string, c echo.Context) (bool, error) {
				return key == cfg.APIKey, nil
			},
			Skipper: func(c echo.Context) bool {
				// Health and metrics stay open for probes and scrapers
				p := c.Path()
				return p == "/v1/health" || p == "/metrics"
			},
		}))
	}

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// API v1 routes
	v1 := e.Group("/v1")
	v1.GET("/health", h.Health)
	v1.POST("/analyze", h.Analyze)
	v1.POST("/manual-swap", h.ManualSwap)
	v1.GET("/analyses/recent", h.RecentAnalyses)

	// Execution endpoints get a rate limit; a runaway client should not be
	// able to spam swap transactions upstream
	execGroup := v1.Group("")
	execGroup.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(1), // 1 request per second per client
		Burst:     5,
		ExpiresIn: 2 * time.Minute,
	})))
	execGroup.POST("/auto-swap", h.AutoSwap)
	execGroup.POST("/execute", h.ExecuteRoute)

	// Runtime toggle CRUD endpoints
	toggleGroup := v1.Group("/toggles")
	toggleGroup.GET("", h.TogglesList)
	toggleGroup.POST("", h.TogglesUpsert)
	toggleGroup.GET("/:key", h.TogglesGet)
	toggleGroup.PUT("/:key", h.TogglesUpdate)
	toggleGroup.DELETE("/:key", h.TogglesDelete)

	// Catch-all route for 404 responses
	e.RouteNotFound("/*", func(c echo.Context) error {
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found", Code: http.StatusNotFound})
	})
}

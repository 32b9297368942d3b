// api.go: HTTP API controller. Routes are registered on an echo group and
// backed by the datastore interface.
package api

import (
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mahastuti/Birdstrike-sub000/internal/conf"
	"github.com/mahastuti/Birdstrike-sub000/internal/datastore"
	"github.com/mahastuti/Birdstrike-sub000/internal/ingest"
	"github.com/mahastuti/Birdstrike-sub000/internal/logging"
	"github.com/mahastuti/Birdstrike-sub000/internal/modeling"
	"github.com/mahastuti/Birdstrike-sub000/internal/observability"
)

// filterCacheTTL bounds how stale the month/year filter dropdowns may get.
const filterCacheTTL = time.Minute

// Controller manages the API routes and handlers.
type Controller struct {
	Echo     *echo.Echo
	Group    *echo.Group
	DS       datastore.Interface
	Settings *conf.Settings

	importer    *ingest.Importer
	deriver     *modeling.Deriver
	filterCache *cache.Cache
	logger      *slog.Logger
}

// New creates the API controller and registers every route.
func New(e *echo.Echo, ds datastore.Interface, settings *conf.Settings, metrics *observability.Metrics, registry *prometheus.Registry) *Controller {
	c := &Controller{
		Echo:        e,
		Group:       e.Group("/api/v2"),
		DS:          ds,
		Settings:    settings,
		importer:    ingest.NewImporter(ds, settings.Import.RenumberBatch, metrics),
		deriver:     modeling.NewDeriver(ds, &settings.Modeling, metrics),
		filterCache: cache.New(filterCacheTTL, 2*filterCacheTTL),
		logger:      logging.ForService("api"),
	}

	e.Use(echomw.Recover())
	e.Use(c.LoggingMiddleware())

	c.Group.GET("/health", c.HealthCheck)
	if registry != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	}

	c.initTrafficRoutes()
	c.initModelingRoutes()
	c.initStrikeRoutes()
	c.initSpeciesRoutes()
	c.initExportRoutes()

	return c
}

// HealthCheck reports whether the API is up.
func (c *Controller) HealthCheck(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
	})
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	Code          int    `json:"code"`
	CorrelationID string `json:"correlation_id"`
}

// HandleError logs the failure and writes the error response. Internal errors
// are logged in full but surfaced with the generic message only.
func (c *Controller) HandleError(ctx echo.Context, err error, message string, code int) error {
	resp := &ErrorResponse{
		Success:       false,
		Message:       message,
		Code:          code,
		CorrelationID: generateCorrelationID(),
	}

	attrs := []any{
		"correlation_id", resp.CorrelationID,
		"message", message,
		"code", code,
		"path", ctx.Request().URL.Path,
		"method", ctx.Request().Method,
		"ip", ctx.RealIP(),
	}
	if err != nil {
		attrs = append(attrs, "error", err.Error())
	}
	c.logger.Error("API error", attrs...)

	return ctx.JSON(code, resp)
}

// generateCorrelationID creates a short random identifier for error tracking.
func generateCorrelationID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const length = 8

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "ERR-RAND"
	}
	for i := range b {
		b[i] = charset[int(b[i])%len(charset)]
	}
	return string(b)
}

package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/errgate-io/errgate/internal/adapters/http/handlers"
	"github.com/errgate-io/errgate/internal/adapters/http/middleware"
	"github.com/errgate-io/errgate/internal/platform/telemetry"
	"github.com/errgate-io/errgate/internal/translator"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 30 * time.Second

// RouterConfig contains everything needed to assemble the route table.
type RouterConfig struct {
	// Logger is the structured logger for request logging and the
	// error translator.
	Logger *slog.Logger

	// ServiceName labels telemetry spans and metrics.
	ServiceName string

	// TelemetryEnabled toggles the tracing and metrics middleware.
	TelemetryEnabled bool

	// Translator holds the translator toggles loaded from configuration.
	Translator translator.Config

	// StatusLookup resolves per-type status code mappings.
	StatusLookup translator.Lookup

	// HealthHandler serves the operational endpoints.
	HealthHandler *handlers.HealthHandler

	// CatalogHandler serves the item catalog API.
	CatalogHandler *handlers.CatalogHandler

	// Timeout is the default request timeout for /api/v1 routes.
	Timeout time.Duration
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware applies in order (first to last):
//  1. Error translator - catches panics and handler errors, so it must
//     wrap everything that can fail
//  2. Request ID
//  3. Correlation ID
//  4. OpenTelemetry tracing and metrics (when enabled)
//  5. Logging (skips /-/ endpoints)
//  6. Timeout (applied to the /api/v1 group)
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.Use(
		middleware.ErrorTranslator(cfg.Translator, cfg.StatusLookup, cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)

	if cfg.TelemetryEnabled {
		engine.Use(
			telemetry.TracingMiddleware(cfg.ServiceName),
			telemetry.Middleware(cfg.ServiceName),
		)
	}

	engine.Use(middleware.Logging(cfg.Logger))

	// Probes get no timeout.
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutes(engine.Group("/-"))
	}

	apiV1 := engine.Group("/api/v1")
	if cfg.Timeout > 0 {
		apiV1.Use(middleware.SimpleTimeout(cfg.Timeout))
	}

	if cfg.CatalogHandler != nil {
		cfg.CatalogHandler.RegisterCatalogRoutes(apiV1)
	}
}

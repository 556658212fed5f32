package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/errgate-io/errgate/internal/platform/logging"
)

const (
	// HeaderCorrelationID is the header name for correlation ID. Unlike
	// the per-request ID, it tracks a business transaction across
	// service boundaries.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyCorrelationID is the context key for storing the correlation ID.
	ContextKeyCorrelationID = "correlation_id"
)

// CorrelationID returns middleware that propagates a correlation ID.
// The ID is taken from the X-Correlation-ID header when propagated from
// upstream, generated when this service is the transaction origin,
// echoed on the response, and attached to the context logger.
func CorrelationID() gin.HandlerFunc {
	return createIDMiddleware(idMiddlewareConfig{
		headerName:      HeaderCorrelationID,
		contextKey:      ContextKeyCorrelationID,
		contextEnricher: logging.WithCorrelationID,
	})
}

// GetCorrelationID extracts the correlation ID from the gin.Context.
// Returns empty string if not set.
func GetCorrelationID(c *gin.Context) string {
	return getIDFromContext(c, ContextKeyCorrelationID)
}

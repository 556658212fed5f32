package middleware

import (
	"encoding/xml"
	"log/slog"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/errgate-io/errgate/internal/fault"
	"github.com/errgate-io/errgate/internal/platform/logging"
	"github.com/errgate-io/errgate/internal/translator"
)

var translationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "errgate_translations_total",
	Help: "Errors translated to HTTP responses, partitioned by translation path (mapped, unmapped, native, nil) and resulting status code.",
}, []string{"outcome", "status"})

// ErrorTranslator returns middleware that turns panics and unhandled
// handler errors into HTTP responses via the config-driven translator.
// On failure, it:
//   - Recovers panics, wrapping the panic value as a fault with the stack
//     captured at the recovery site
//   - Picks up the last error attached to the gin context by handlers
//   - Resolves the status code through the per-type lookup, emits the
//     reason headers and, when configured, the stack-trace body
//
// Apply it first in the chain so it catches failures from all subsequent
// middleware and handlers.
func ErrorTranslator(cfg translator.Config, lookup translator.Lookup, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Seed the context logger; downstream middleware enriches it
		// with request and correlation IDs.
		c.Request = c.Request.WithContext(logging.WithContext(c.Request.Context(), logger))

		defer func() {
			if r := recover(); r != nil {
				translateAndRespond(c, fault.FromPanic(r), cfg, lookup)
			}
		}()

		c.Next()

		if len(c.Errors) > 0 {
			translateAndRespond(c, c.Errors.Last().Err, cfg, lookup)
		}
	}
}

// translateAndRespond runs the translator and writes its response
// descriptor, unless a response has already been written.
func translateAndRespond(c *gin.Context, err error, cfg translator.Config, lookup translator.Lookup) {
	// Context logger carries request_id / correlation_id when those
	// middlewares ran before the failure.
	ctxLogger := logging.FromContext(c.Request.Context())

	resp := translator.Translate(c.Request.Context(), err, cfg, lookup, ctxLogger)

	translationsTotal.WithLabelValues(string(resp.Outcome), strconv.Itoa(resp.StatusCode)).Inc()

	if c.Writer.Written() {
		c.Abort()
		return
	}

	c.Abort()
	writeResponse(c, resp)
}

// stacktraceBody wraps the body text for XML rendering.
type stacktraceBody struct {
	XMLName xml.Name `xml:"stacktrace"`
	Text    string   `xml:",chardata"`
}

// writeResponse writes a translator response descriptor to the client.
// The body, when present, is content negotiated among JSON, XML and
// plain text; JSON wins when the client has no preference.
func writeResponse(c *gin.Context, resp translator.Response) {
	header := c.Writer.Header()
	for name, values := range resp.Header {
		for _, v := range values {
			header.Add(name, v)
		}
	}

	if !resp.HasBody {
		c.Status(resp.StatusCode)
		c.Writer.WriteHeaderNow()
		return
	}

	switch c.NegotiateFormat(gin.MIMEJSON, gin.MIMEXML, gin.MIMEPlain) {
	case gin.MIMEXML:
		c.XML(resp.StatusCode, stacktraceBody{Text: resp.Body})
	case gin.MIMEPlain:
		c.String(resp.StatusCode, "%s", resp.Body)
	default:
		c.JSON(resp.StatusCode, resp.Body)
	}
}

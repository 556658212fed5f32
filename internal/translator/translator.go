// Package translator maps unhandled runtime errors to HTTP response
// descriptors.
//
// The mapping policy is config-driven: every error type identifier can be
// assigned an HTTP status code through the per-type configuration key
// "<TypeID>/mp-jaxrs-ext/statuscode". When the outermost error carries no
// mapping, resolution walks the cause chain and uses the nearest ancestor
// that does. Errors with no mapping anywhere translate to 500 Internal
// Server Error, with each chain level's message exposed as an ordered
// reason header. A negative configured status disables the mapping for
// that type.
//
// The translator is the terminal handler for otherwise-uncaught errors:
// it never returns an error and never panics.
package translator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/errgate-io/errgate/internal/fault"
	"github.com/errgate-io/errgate/internal/platform/logging"
)

const (
	// StatusCodeKeySuffix is appended to an error's type identifier to
	// form the per-type status code configuration key.
	StatusCodeKeySuffix = "/mp-jaxrs-ext/statuscode"

	unknownReason  = "Unknown exception"
	unmappedLogMsg = "Unmapped Runtime Exception"
	nilErrLogMsg   = "Runtime Exception that is null"

	// maxChainDepth bounds every cause-chain walk. Malformed chains
	// (cyclic or absurdly deep) are cut off and the node at the cap is
	// treated as terminal.
	maxChainDepth = 64
)

// Config holds the translator's per-call settings. It is read-only
// during a translation.
type Config struct {
	// IncludeClassName prefixes mapped reasons with "[<TypeID>]".
	IncludeClassName bool

	// IncludeStacktrace attaches a rendered stack trace as the body.
	IncludeStacktrace bool

	// LogLevel names the severity the translator logs at, e.g. "FINEST"
	// or "warn". See logging.ParseLevel for accepted names.
	LogLevel string
}

// Lookup resolves a configuration key to an optional integer. It is the
// external configuration collaborator; see config.StatusLookup for the
// koanf-backed implementation.
type Lookup func(key string) (int, bool)

// Translate maps err to an HTTP response descriptor. It emits exactly one
// log record per call, at the configured level, and never fails: any
// internal problem degrades to a descriptive string in the output.
//
// A nil err is defensively translated to a bare 500.
func Translate(ctx context.Context, err error, cfg Config, lookup Lookup, logger *slog.Logger) Response {
	level := logging.ParseLevel(cfg.LogLevel)

	if err == nil {
		logger.Log(ctx, level, nilErrLogMsg)

		resp := NewResponse(http.StatusInternalServerError)
		resp.Outcome = OutcomeNil

		return resp
	}

	cur := err
	for depth := 0; depth < maxChainDepth; depth++ {
		// Errors carrying their own response bypass all mapping. The
		// check is per frame: a wrapped HTTPError surfaces once the
		// walk reaches it.
		if r, ok := cur.(Responder); ok {
			resp := r.Response()
			resp.Outcome = OutcomeNative
			return resp
		}

		if status, found := lookup(fault.TypeID(cur) + StatusCodeKeySuffix); found {
			if status < 0 {
				// Explicitly disabled at this chain level.
				return translateUnmapped(ctx, cur, cfg, level, logger)
			}
			return translateMapped(ctx, cur, status, cfg, level, logger)
		}

		cause := errors.Unwrap(cur)
		if cause == nil {
			break
		}
		cur = cause
	}

	// No mapping anywhere: report the whole chain, outermost first.
	return translateUnmapped(ctx, err, cfg, level, logger)
}

// translateMapped builds the response for an error whose type (at the
// current chain position) has a configured status code.
func translateMapped(ctx context.Context, err error, status int, cfg Config, level slog.Level, logger *slog.Logger) Response {
	reason := buildReason(err, cfg.IncludeClassName)
	logger.Log(ctx, level, reason, slog.Any("error", err))

	resp := NewResponse(status)
	resp.Outcome = OutcomeMapped
	resp.Header.Add(ReasonHeader, reason)
	attachStacktrace(&resp, err, cfg)

	return resp
}

// translateUnmapped builds the 500 response for an error with no usable
// mapping, exposing every non-empty chain message as a reason header.
func translateUnmapped(ctx context.Context, err error, cfg Config, level slog.Level, logger *slog.Logger) Response {
	logger.Log(ctx, level, unmappedLogMsg, slog.Any("error", err))

	resp := NewResponse(http.StatusInternalServerError)
	resp.Outcome = OutcomeUnmapped
	for _, reason := range collectReasons(err) {
		resp.Header.Add(ReasonHeader, reason)
	}
	attachStacktrace(&resp, err, cfg)

	return resp
}

// buildReason finds the first non-empty message walking from err toward
// the terminal cause, falling back to a fixed text when the whole chain
// is silent. The optional class-name prefix names the chain level the
// walk stopped on, not necessarily err itself.
func buildReason(err error, includeClassName bool) string {
	cur := err
	for depth := 0; depth < maxChainDepth; depth++ {
		if msg := fault.Message(cur); msg != "" {
			return reasonPrefix(cur, includeClassName) + msg
		}

		cause := errors.Unwrap(cur)
		if cause == nil {
			break
		}
		cur = cause
	}

	return reasonPrefix(cur, includeClassName) + unknownReason
}

func reasonPrefix(err error, includeClassName bool) string {
	if !includeClassName {
		return ""
	}
	return "[" + fault.TypeID(err) + "]"
}

// collectReasons gathers each chain level's non-empty message in order,
// outermost first. Levels without a message are skipped but the walk
// still descends through them.
func collectReasons(err error) []string {
	var reasons []string

	cur := err
	for depth := 0; cur != nil && depth < maxChainDepth; depth++ {
		if msg := fault.Message(cur); msg != "" {
			reasons = append(reasons, msg)
		}
		cur = errors.Unwrap(cur)
	}

	return reasons
}

func attachStacktrace(resp *Response, err error, cfg Config) {
	if !cfg.IncludeStacktrace {
		return
	}
	resp.Body = Stacktrace(err)
	resp.HasBody = true
}

// Stacktrace renders a textual stack trace for err. Errors that captured
// a stack at construction (fault.StackTracer) render that; for everything
// else the error chain text plus the current goroutine stack is used.
// A panic during rendering degrades to a descriptive string.
func Stacktrace(err error) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = fmt.Sprintf("Could not get stacktrace [%v]", r)
		}
	}()

	if st, ok := err.(fault.StackTracer); ok {
		if s := st.StackTrace(); s != "" {
			return s
		}
	}

	var b strings.Builder
	b.WriteString(err.Error())
	b.WriteByte('\n')
	b.Write(debug.Stack())

	return b.String()
}

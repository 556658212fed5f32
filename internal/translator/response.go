package translator

import "net/http"

// ReasonHeader is the response header carrying reason messages. It may
// appear multiple times, one entry per collected message, in chain order.
const ReasonHeader = "reason"

// Outcome names which translation path produced a response.
type Outcome string

const (
	// OutcomeMapped: a chain level had a configured status code.
	OutcomeMapped Outcome = "mapped"

	// OutcomeUnmapped: no usable mapping anywhere in the chain.
	OutcomeUnmapped Outcome = "unmapped"

	// OutcomeNative: the error carried its own prebuilt response.
	OutcomeNative Outcome = "native"

	// OutcomeNil: the defensive nil-error terminal case.
	OutcomeNil Outcome = "nil"
)

// Response describes the HTTP response an error translates to. It is
// transport-neutral; the HTTP adapter writes it to the client.
type Response struct {
	// StatusCode is the HTTP status line code.
	StatusCode int

	// Header holds response headers. The reason header may carry
	// multiple ordered values.
	Header http.Header

	// Body is the optional plain-text body (a rendered stack trace).
	// HasBody distinguishes "empty body" from "no body".
	Body    string
	HasBody bool

	// Outcome records the translation path taken, for metrics.
	Outcome Outcome
}

// NewResponse creates a response descriptor with the given status and no
// headers or body.
func NewResponse(statusCode int) Response {
	return Response{
		StatusCode: statusCode,
		Header:     http.Header{},
	}
}

// Reasons returns the ordered reason header values.
func (r Response) Reasons() []string {
	return r.Header.Values(ReasonHeader)
}

// Responder is implemented by errors that already carry their own
// prebuilt HTTP response. The translator returns that response unchanged,
// bypassing all config-driven mapping.
type Responder interface {
	error
	Response() Response
}

// HTTPError is an error with an embedded response. Handlers that know
// the correct HTTP representation of a failure return one of these
// instead of relying on per-type status configuration.
type HTTPError struct {
	resp Response
}

// NewHTTPError creates an HTTPError with the given status and optional
// reason. The reason, when non-empty, becomes a reason header on the
// embedded response.
func NewHTTPError(statusCode int, reason string) *HTTPError {
	resp := NewResponse(statusCode)
	if reason != "" {
		resp.Header.Add(ReasonHeader, reason)
	}
	return &HTTPError{resp: resp}
}

// NewHTTPErrorFromResponse wraps a fully built response descriptor.
func NewHTTPErrorFromResponse(resp Response) *HTTPError {
	return &HTTPError{resp: resp}
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if reasons := e.resp.Reasons(); len(reasons) > 0 {
		return reasons[0]
	}
	return http.StatusText(e.resp.StatusCode)
}

// Response implements Responder.
func (e *HTTPError) Response() Response {
	return e.resp
}

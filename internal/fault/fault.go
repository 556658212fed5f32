// Package fault provides the typed error model consumed by the exception
// translator. A Fault carries a fully-qualified type identifier, an optional
// message, an optional cause (forming a singly-linked chain), and the
// goroutine stack captured at construction time.
//
// Faults are read-only after construction. Chain walking never mutates.
package fault

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
)

// PanicType is the type identifier assigned to faults created from
// recovered panic values.
const PanicType = "runtime.PanicError"

// maxRenderDepth bounds how many chain levels Error renders. Malformed
// (cyclic) chains are cut off rather than recursed into.
const maxRenderDepth = 64

// Typer is implemented by errors that carry an explicit type identifier.
// The identifier is a fully-qualified, class-like name such as
// "catalog.NotFoundError" and is the key the translator uses for
// per-type status code lookups.
type Typer interface {
	FaultType() string
}

// StackTracer is implemented by errors that captured a stack trace at
// the point they were created.
type StackTracer interface {
	StackTrace() string
}

// Fault is the canonical typed error.
type Fault struct {
	// Type is the fully-qualified type identifier.
	Type string

	// Message is the human-readable message for this level of the chain.
	// May be empty; the translator then falls through to the cause.
	Message string

	// Cause is the wrapped underlying error, if any.
	Cause error

	stack []byte
}

// New creates a fault with the given type identifier and message.
func New(faultType, message string) *Fault {
	return &Fault{
		Type:    faultType,
		Message: message,
		stack:   debug.Stack(),
	}
}

// Newf creates a fault with a formatted message.
func Newf(faultType, format string, args ...any) *Fault {
	return New(faultType, fmt.Sprintf(format, args...))
}

// Wrap creates a fault that wraps an underlying cause.
func Wrap(faultType, message string, cause error) *Fault {
	f := New(faultType, message)
	f.Cause = cause
	return f
}

// FromPanic converts a recovered panic value into a fault, capturing the
// stack at the recovery site. Panic values that are themselves errors
// become the cause, so type-based status lookups still reach them.
func FromPanic(v any) *Fault {
	f := &Fault{
		Type:  PanicType,
		stack: debug.Stack(),
	}

	if err, ok := v.(error); ok {
		f.Cause = err
		return f
	}

	f.Message = fmt.Sprint(v)

	return f
}

// Error implements the error interface. A level with a message renders
// as "<Type>: <message>"; a silent level defers to its cause. The walk
// is iterative and depth-bounded so a cyclic chain renders a truncated
// text instead of overflowing the stack.
func (f *Fault) Error() string {
	var b strings.Builder

	cur := error(f)
	for depth := 0; depth < maxRenderDepth; depth++ {
		if depth > 0 {
			b.WriteString(": ")
		}

		cf, ok := cur.(*Fault)
		if !ok {
			b.WriteString(cur.Error())
			break
		}

		b.WriteString(cf.Type)

		if cf.Message != "" {
			b.WriteString(": ")
			b.WriteString(cf.Message)
			break
		}

		if cf.Cause == nil {
			break
		}
		cur = cf.Cause
	}

	return b.String()
}

// Unwrap returns the cause, enabling errors.Is / errors.As chains.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// FaultType implements Typer.
func (f *Fault) FaultType() string {
	return f.Type
}

// StackTrace implements StackTracer. It returns the goroutine stack
// captured when the fault was constructed.
func (f *Fault) StackTrace() string {
	return string(f.stack)
}

// TypeID returns the type identifier for any error. Errors implementing
// Typer report their own identifier; everything else gets a
// reflect-derived one (package-qualified type name, pointer stripped).
func TypeID(err error) string {
	if t, ok := err.(Typer); ok {
		return t.FaultType()
	}

	return strings.TrimLeft(fmt.Sprintf("%T", err), "*")
}

// Message returns the message contributed by the outermost level of err
// only, without the text of its causes. Faults carry a per-level message
// directly; for errors wrapped in the conventional
// fmt.Errorf("...: %w", cause) style the cause's text is stripped from
// the end so each chain level contributes its own fragment.
func Message(err error) string {
	if f, ok := err.(*Fault); ok {
		return f.Message
	}

	msg := err.Error()

	if cause := errors.Unwrap(err); cause != nil {
		msg = strings.TrimSuffix(msg, cause.Error())
		msg = strings.TrimSuffix(msg, ": ")
	}

	return msg
}

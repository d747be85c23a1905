package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseContext Phase = "context" // context creation and teardown
	PhaseModule  Phase = "module"  // module construction and IR queries
	PhaseType    Phase = "type"    // type derivation
	PhaseValue   Phase = "value"   // constant and global construction
	PhaseBuilder Phase = "builder" // instruction emission
	PhasePasses  Phase = "passes"  // pass manager pipelines
	PhaseEngine  Phase = "engine"  // JIT compilation and symbol lookup
	PhaseBuffer  Phase = "buffer"  // memory buffer I/O
	PhaseTarget  Phase = "target"  // target machine and code emission
	PhaseBinary  Phase = "binary"  // object file inspection
)

// Kind categorizes the error
type Kind string

const (
	// KindNullPointer means a native constructor returned NULL with no
	// diagnostic attached.
	KindNullPointer Kind = "null_pointer"

	// KindDiagnostic carries a native-reported failure message. The
	// diagnostic's bytes are preserved verbatim.
	KindDiagnostic Kind = "diagnostic"

	// KindInvalidPath means a host string could not cross the C boundary,
	// typically because it contains an embedded NUL byte.
	KindInvalidPath Kind = "invalid_path"

	// KindIO wraps an operating system read or write failure.
	KindIO Kind = "io"

	// KindUseAfterDispose means a handle was used after it, or the context
	// that owns it, was closed.
	KindUseAfterDispose Kind = "use_after_dispose"

	// KindUnpositioned means a builder emission was attempted with no
	// insertion point set.
	KindUnpositioned Kind = "unpositioned"

	// KindNotFound means a named lookup (symbol, attribute kind) missed.
	KindNotFound Kind = "not_found"

	// KindInvalidArgument means a host-side precondition on the call's
	// arguments failed before anything crossed the C boundary.
	KindInvalidArgument Kind = "invalid_argument"
)

// Diagnostic is an owned native diagnostic attached to an error. The concrete
// type lives at the cgo boundary; callers must read it before closing it.
type Diagnostic interface {
	fmt.Stringer

	// Len returns the diagnostic's length in bytes without copying it.
	Len() int

	// Close releases the native bytes exactly once.
	Close() error
}

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Diag   Diagnostic
	Phase  Phase
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Diag != nil {
		if e.Detail != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Diag.String())
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Close releases the owned diagnostic, if any. Errors inspected and dropped
// at the call site do not strictly need closing; the diagnostic's own
// finalization rules apply.
func (e *Error) Close() error {
	if e.Diag == nil {
		return nil
	}
	return e.Diag.Close()
}

// Convenience constructors for common error patterns

// NullPointer reports a native constructor that returned NULL
func NullPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNullPointer,
		Detail: fmt.Sprintf("%s: native constructor returned null", what),
	}
}

// Native wraps a native-reported diagnostic, taking ownership of it
func Native(phase Phase, what string, diag Diagnostic) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDiagnostic,
		Detail: what,
		Diag:   diag,
	}
}

// InvalidPath reports a host string that cannot cross the C boundary
func InvalidPath(phase Phase, path string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidPath,
		Detail: fmt.Sprintf("path %q is not representable as a C string", path),
	}
}

// IO wraps an operating system read or write failure
func IO(phase Phase, op string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: op,
		Cause:  cause,
	}
}

// UseAfterDispose reports a handle used after its owner was closed
func UseAfterDispose(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUseAfterDispose,
		Detail: fmt.Sprintf("%s used after dispose", what),
	}
}

// Unpositioned reports a builder emission with no insertion point
func Unpositioned(op string) *Error {
	return &Error{
		Phase:  PhaseBuilder,
		Kind:   KindUnpositioned,
		Detail: fmt.Sprintf("%s: builder has no insertion point", op),
	}
}

// NotFound reports a named lookup that missed
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidArgument reports a host-side precondition failure
func InvalidArgument(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidArgument,
		Detail: detail,
	}
}

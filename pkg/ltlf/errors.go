// Package ltlf implements the term store, visitor framework, and XNF
// transformer for LTLf formulas: hash-consed AST construction, NNF and
// next-normal-form rewriting, all scoped to a single Context.
package ltlf

import "fmt"

// Kind classifies the errors this package and its collaborators can return.
// The CLI layer maps each Kind to an exit code; see internal/cli.
type Kind int

const (
	// Internal marks a bug in this package: an invariant the Context itself
	// is supposed to maintain was violated.
	Internal Kind = iota
	// InvalidArgument marks a caller error: a foreign handle, an out-of-range
	// atom id, an empty operand list where one or more is required.
	InvalidArgument
	// ParseError is produced by internal/surface and passed through
	// unchanged by anything that forwards it.
	ParseError
	// Cancelled marks a context.Context cancellation observed mid-operation.
	Cancelled
	// OutOfMemory marks an allocation failure the Context could not recover
	// from; callers should treat it as fatal.
	OutOfMemory
)

func (k Kind) String() string {
	switch k {
	case Internal:
		return "Internal"
	case InvalidArgument:
		return "InvalidArgument"
	case ParseError:
		return "ParseError"
	case Cancelled:
		return "Cancelled"
	case OutOfMemory:
		return "OutOfMemory"
	default:
		return "Unknown"
	}
}

// Error is the single error type produced by pkg/ltlf. Msg follows the
// "Type: message" convention used throughout this codebase.
type Error struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(k Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func wrapError(k Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// NewError builds an *Error of the given Kind for collaborators (pkg/game,
// pkg/sdd, internal/surface) that need to report errors in this package's
// Kind taxonomy without reaching into its unexported constructors.
func NewError(k Kind, format string, args ...interface{}) *Error {
	return newError(k, format, args...)
}

// WrapError is NewError with an underlying cause preserved via Unwrap.
func WrapError(k Kind, err error, format string, args ...interface{}) *Error {
	return wrapError(k, err, format, args...)
}

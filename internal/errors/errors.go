// Package errors defines the error taxonomy shared by the check engine and its
// command layer.
//
// Two kinds exist: invalid input, which is user-facing and fixed by
// re-issuing the command, and internal errors, which indicate a broken
// contract between trusted components, such as a validated configuration
// the command layer still cannot map.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind classifies an Error.
type Kind int

const (
	// KindInvalidInput marks malformed user input: dice expressions,
	// modifiers, name lookups.
	KindInvalidInput Kind = iota + 1
	// KindInternal marks a contract violation between trusted callers.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindInternal:
		return "internal"
	default:
		return "unknown"
	}
}

// Error is a categorised error carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error { return e.Err }

// InvalidInput returns a KindInvalidInput error with a formatted message.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// Internal returns a KindInternal error wrapping err.
func Internal(err error, format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the Kind of the first *Error in err's chain, or 0 if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsInvalidInput reports whether err carries KindInvalidInput.
func IsInvalidInput(err error) bool {
	return KindOf(err) == KindInvalidInput
}

// Package derrors provides coded domain errors. A code classifies the
// failure for callers (and eventually an outer surface) without leaking how
// the operation is implemented; the wrapped cause keeps the chain intact for
// errors.Is / errors.As.
package derrors

import "errors"

// Code classifies a domain failure.
type Code string

const (
	// CodeNotFound names a referenced aggregate or entity that does not exist.
	CodeNotFound Code = "not_found"
	// CodeOutOfRange names a positional index outside a sequence's bounds.
	CodeOutOfRange Code = "out_of_range"
	// CodeValidation names input rejected before any state changed.
	CodeValidation Code = "validation"
	// CodeConflict names a uniqueness collision, e.g. an email already taken.
	CodeConflict Code = "conflict"
	// CodeUnauthorized names a failed credential or session check.
	CodeUnauthorized Code = "unauthorized"
	// CodeStorage names a durable-storage failure after which in-memory
	// state has been rolled back.
	CodeStorage Code = "storage"
	// CodeInternal is the fallback for unclassified failures.
	CodeInternal Code = "internal"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a coded error with no cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and context to err. Wrap(nil, ...) is nil, so it can
// be applied unconditionally on return paths.
func Wrap(err error, code Code, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether any error in the chain carries code.
func HasCode(err error, code Code) bool {
	for err != nil {
		var coded *Error
		if !errors.As(err, &coded) {
			return false
		}
		if coded.Code == code {
			return true
		}
		err = coded.cause
	}
	return false
}

// CodeOf returns the outermost code in the chain, or CodeInternal when the
// error carries none.
func CodeOf(err error) Code {
	var coded *Error
	if errors.As(err, &coded) {
		return coded.Code
	}
	return CodeInternal
}

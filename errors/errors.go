// Package errors provides the structured errors returned by the export engine.
//
// Every user-facing failure carries a machine-readable Code so callers can
// branch on it without parsing messages:
//
//	if errors.Is(err, errors.ErrCodeTooLarge) {
//	    // suggest the vector target
//	}
//
// Degenerate bounds and empty node content are never errors; the engine
// substitutes safe defaults for them.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

const (
	// Raster target
	ErrCodeTooLarge     Code = "TOO_LARGE"
	ErrCodeDecodeFailed Code = "DECODE_FAILED"

	// Delivery
	ErrCodeSinkUnavailable Code = "SINK_UNAVAILABLE"

	// Input validation
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// coded is implemented by error types that carry structured fields of their
// own but still report a Code.
type coded interface {
	error
	Code() Code
}

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error { return e.Cause }

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether err, or anything in its chain, has the given code.
func Is(err error, code Code) bool {
	return code != "" && GetCode(err) == code
}

// GetCode extracts the first error code found in err's chain.
// Returns the empty string if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coded
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns the message without the code prefix.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	var u interface{ UserMessage() string }
	if errors.As(err, &u) {
		return u.UserMessage()
	}
	return err.Error()
}

// As is errors.As, re-exported so callers importing this package under the
// name errors keep access to it.
func As(err error, target any) bool { return errors.As(err, target) }

// Package domainerrors provides typed errors with stable codes shared across
// service and transport layers. Handlers map codes to HTTP statuses; services
// create and inspect them without importing net/http.
package domainerrors

import (
	"errors"
	"fmt"
)

// Code is a stable, machine-readable error classification.
type Code string

const (
	// CodeBadRequest marks requests rejected before any evaluation runs
	// (missing module/operation, malformed body).
	CodeBadRequest Code = "bad_request"

	// CodeValidation marks requests with a well-formed body but invalid fields.
	CodeValidation Code = "validation_error"

	// CodeNotFound marks references to a decision that was never evaluated.
	CodeNotFound Code = "not_found"

	// CodeConflict marks workflow actions on an already finalized decision.
	CodeConflict Code = "conflict"

	// CodeUnavailable marks failures of a required collaborator (audit sink,
	// decision store) where retrying later may succeed.
	CodeUnavailable Code = "unavailable"

	// CodeInternal marks unexpected failures. The description is never exposed
	// on the wire for this code.
	CodeInternal Code = "internal_error"
)

// Error carries a code plus a human-readable message and optionally wraps a cause.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a typed error with the given code and message.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a typed error that preserves the underlying cause for logs
// while keeping the outward message stable.
func Wrap(code Code, message string, cause error) error {
	return &Error{Code: code, Message: message, cause: cause}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for call-site readability.
func Is(err error, code Code) bool { return HasCode(err, code) }

// CodeOf returns the code carried by err, or CodeInternal for untyped errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the message carried by err, or an empty string for
// untyped errors.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}

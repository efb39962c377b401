// Package apperr carries the error kinds the HTTP layer maps to status
// codes. Lower layers keep wrapping with fmt.Errorf; a kind is attached
// at the point where the failure class is known.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for response mapping.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindInternal   Kind = "internal"
)

// HTTPStatus returns the status code for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a kinded error with a client-facing message.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a kinded error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// Validation creates a validation error.
func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

// NotFound creates a not-found error.
func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

// Conflict creates a conflict error.
func Conflict(format string, args ...any) *Error {
	return New(KindConflict, format, args...)
}

// Internal wraps an unexpected failure.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal Server Error", Err: err}
}

// KindOf extracts the kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the client-facing message from err. Unclassified
// errors report a generic message so internals never leak.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Internal Server Error"
}

package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so transport layers can map it
// to a status code without inspecting message text.
type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindConflict      ErrorKind = "conflict"
	KindForbidden     ErrorKind = "forbidden"
	KindUnauthorized  ErrorKind = "unauthorized"
	KindInternal      ErrorKind = "internal"

	// Availability and booking specific kinds.
	KindInvalidFormat            ErrorKind = "invalid_format"
	KindInvertedRange            ErrorKind = "inverted_range"
	KindPastCheckIn              ErrorKind = "past_check_in"
	KindTooFarInFuture           ErrorKind = "too_far_in_future"
	KindCapacityExceeded         ErrorKind = "capacity_exceeded"
	KindListingInactive          ErrorKind = "listing_inactive"
	KindIllegalTransition        ErrorKind = "illegal_transition"
	KindCancellationWindowClosed ErrorKind = "cancellation_window_closed"
)

// Error is the domain error type carried across layer boundaries.
type Error struct {
	Kind    ErrorKind
	Message string
	Details map[string]interface{}
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// WithDetail attaches a structured detail to the error and returns it.
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewError creates a domain error with the given kind and message.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// NewValidationError creates a generic validation error.
func NewValidationError(message string) *Error {
	return NewError(KindValidation, message)
}

// NewNotFoundError creates a not-found error for the given entity and identifier.
func NewNotFoundError(entity, id string) *Error {
	return NewError(KindNotFound, fmt.Sprintf("%s with ID %s not found", entity, id))
}

// NewConflictError creates a conflict error.
func NewConflictError(message string) *Error {
	return NewError(KindConflict, message)
}

// NewForbiddenError creates a forbidden error.
func NewForbiddenError(message string) *Error {
	return NewError(KindForbidden, message)
}

// NewUnauthorizedError creates an unauthorized error.
func NewUnauthorizedError(message string) *Error {
	return NewError(KindUnauthorized, message)
}

// NewIllegalTransitionError creates an error for a disallowed state transition.
func NewIllegalTransitionError(from, to string) *Error {
	return NewError(KindIllegalTransition, fmt.Sprintf("cannot transition from %s to %s", from, to))
}

// KindOf returns the kind of a domain error, or KindInternal for any
// other error value.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

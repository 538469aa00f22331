package social

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a social graph failure carrying an HTTP-style status. The API
// layer translates these onto the wire verbatim.
type Error struct {
	Status  int
	Message string
	Reason  string // optional denial detail, e.g. "blocked" or "privacy"
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("social error %d (%s): %s", e.Status, e.Reason, e.Message)
	}
	return fmt.Sprintf("social error %d: %s", e.Status, e.Message)
}

// NewInvalidOperation creates a 400 error
func NewInvalidOperation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NewNotFound creates a 404 error
func NewNotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// NewForbidden creates a 403 error
func NewForbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message}
}

// NewForbiddenReason creates a 403 error with a denial reason
func NewForbiddenReason(message, reason string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message, Reason: reason}
}

// NewConflict creates a 409 error
func NewConflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message}
}

// Denial reasons surfaced on 403s
const (
	DenyReasonBlocked = "blocked"
	DenyReasonPrivacy = "privacy"
)

// StatusOf extracts the HTTP-style status from an error, or 500 for
// anything untyped.
func StatusOf(err error) int {
	var se *Error
	if errors.As(err, &se) {
		return se.Status
	}
	return http.StatusInternalServerError
}

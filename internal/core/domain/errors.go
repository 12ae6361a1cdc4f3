package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized is returned for 401/403 answers on authenticated endpoints.
	ErrUnauthorized = errors.New("session rejected by api")
	// ErrNotFound is returned for 404 answers.
	ErrNotFound = errors.New("resource not found")
	// ErrUnreachable is returned when the API could not be contacted at all.
	ErrUnreachable = errors.New("api unreachable")
	// ErrSessionNotFound is returned by session stores for unknown ids.
	ErrSessionNotFound = errors.New("session not found")
	// ErrForbiddenScreen is returned when a session lacks the role a screen requires.
	ErrForbiddenScreen = errors.New("screen not allowed for role")
	// ErrInvalidPanelTransition is returned when an admin panel mode is entered
	// while the other one is active.
	ErrInvalidPanelTransition = errors.New("invalid panel transition")
)

// APIError carries a non-2xx answer that is neither an auth failure nor a 404.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api status %d", e.Status)
	}
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

// ValidationError is raised before any network call and shown inline.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidationError builds a ValidationError with the given user-facing message.
func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

// MessageOf returns the server-provided message carried by err, or fallback.
func MessageOf(err error, fallback string) string {
	var ve *ValidationError
	if errors.As(err, &ve) && ve.Message != "" {
		return ve.Message
	}
	var ae *APIError
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for error classification. The provider wraps these so
// callers can handle error categories uniformly with errors.Is:
//
//	return fmt.Errorf("failed to delete server: %w", domain.ErrNotFound)
var (
	// ErrValidation indicates the request was rejected locally, before any
	// network call was made.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrUnauthorized indicates the request was rejected due to invalid,
	// expired, or missing credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates the provider throttled the request.
	ErrRateLimited = errors.New("rate limited")

	// ErrConflict indicates a state or uniqueness conflict, such as an
	// operation on a server in a transitional state.
	ErrConflict = errors.New("conflict")
)

// APIError is a non-2xx response from the control-plane API. It carries the
// raw status code and the provider's message, and unwraps to the matching
// sentinel so errors.Is works on the category.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap maps the HTTP status onto a sentinel error category.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusConflict:
		return ErrConflict
	}
	return nil
}

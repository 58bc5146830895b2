package domain

import (
	"errors"
)

var (
	// ErrNotFound signals a missing document.
	ErrNotFound = errors.New("not found")
	// ErrValidation signals malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrEngineUnavailable signals a transport failure or timeout talking to the search engine.
	ErrEngineUnavailable = errors.New("search engine unavailable")
	// ErrEngineRejected signals a structured error returned by the search engine.
	ErrEngineRejected = errors.New("search engine rejected request")
	// ErrProfilesDisabled signals that no interaction profile store is configured.
	ErrProfilesDisabled = errors.New("interaction profiles disabled")
)

// ValidationError wraps ErrValidation with the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return ErrValidation.Error() + ": " + e.Reason
	}
	return ErrValidation.Error() + ": " + e.Field + " " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a validation error for field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsClientError reports whether err is a business outcome (not found or invalid
// input) rather than an engine failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrValidation)
}

package provider

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderNotFound is returned when no strategy is registered for a type.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrInvalidProviderType is returned when the type tag is not a string.
	ErrInvalidProviderType = errors.New("provider type must be a string")
)

// AuthError wraps an authentication failure for a named profile with
// actionable guidance.
type AuthError struct {
	Profile string
	Cause   error
	Hint    string
}

func (e *AuthError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("authenticate %s: %v\n\n%s", e.Profile, e.Cause, e.Hint)
	}
	return fmt.Sprintf("authenticate %s: %v", e.Profile, e.Cause)
}

func (e *AuthError) Unwrap() error {
	return e.Cause
}

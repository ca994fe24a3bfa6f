package credential

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigurationMissing is returned when a provider is constructed
	// without a configuration.
	ErrConfigurationMissing = errors.New("configuration missing")
	// ErrMissingCredentialsSection is returned when the configuration has
	// no usable credentials section.
	ErrMissingCredentialsSection = errors.New("missing credentials section")
	// ErrMissingCredentialField is returned when a required key is absent.
	ErrMissingCredentialField = errors.New("missing credential field")
	// ErrEmptyCredentialField is returned when a required key maps to "".
	ErrEmptyCredentialField = errors.New("empty credential field")
	// ErrInvalidCredentialField is returned when a required key holds a
	// value that is not a string.
	ErrInvalidCredentialField = errors.New("invalid credential field")
	// ErrNotAuthenticated is returned when credentials are requested
	// before any successful authentication.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// FieldError reports a problem with a single named credential field.
// It unwraps to one of the field sentinels above.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Field)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// FieldName returns the field named by err, or "" if err is not a
// FieldError.
func FieldName(err error) string {
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe.Field
	}
	return ""
}

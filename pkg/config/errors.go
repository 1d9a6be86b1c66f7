package config

import (
	"errors"
	"fmt"
)

// Configuration errors
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrMissingResource      = errors.New("missing resource")
	ErrUnknownField         = errors.New("unknown configuration field")
	ErrInvalidConfigFile    = errors.New("invalid configuration file")
)

// ConfigurationError is returned when a field fails transformation or validation.
type ConfigurationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid value for %q: %s", e.Field, e.Reason)
}

// Unwrap returns the underlying cause, if any.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// MissingResourceError is returned when a path referenced by the configuration does not exist.
type MissingResourceError struct {
	Field string
	Path  string
	// Kind is "file" or "directory"
	Kind string
}

func (e *MissingResourceError) Error() string {
	return fmt.Sprintf("%s %q referenced by %q does not exist", e.Kind, e.Path, e.Field)
}

// Is reports whether target is ErrMissingResource.
func (e *MissingResourceError) Is(target error) bool {
	return target == ErrMissingResource
}

func invalid(field, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

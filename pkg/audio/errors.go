package audio

import (
	"errors"
	"fmt"
)

// Define static errors
var (
	ErrDependencyMissing = errors.New("required program not found in PATH")
	ErrProbeFailed       = errors.New("failed to read audio information")
	ErrConversionFailed  = errors.New("audio conversion failed")
	ErrInvalidOptions    = errors.New("invalid audio options")
)

// ConversionError describes one failed sox invocation.
type ConversionError struct {
	Instrument string
	Output     string
	// Log is the combined output of the failed command.
	Log string
	Err error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("failed to convert %s for %q: %v", e.Output, e.Instrument, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrConversionFailed.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversionFailed
}

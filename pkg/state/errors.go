package state

import (
	"errors"
	"fmt"
)

// ErrInternalConsistency is matched by every InternalConsistencyError.
var ErrInternalConsistency = errors.New("internal consistency violation")

// InternalConsistencyError reports a plan that does not line up with its samples.
// It always indicates a defect in the caller, never bad user input.
type InternalConsistencyError struct {
	Instrument string
	Reason     string
}

func (e *InternalConsistencyError) Error() string {
	if e.Instrument == "" {
		return fmt.Sprintf("%s: %s", ErrInternalConsistency, e.Reason)
	}

	return fmt.Sprintf("%s: instrument %q: %s", ErrInternalConsistency, e.Instrument, e.Reason)
}

// Is reports whether target is ErrInternalConsistency.
func (e *InternalConsistencyError) Is(target error) bool {
	return target == ErrInternalConsistency
}

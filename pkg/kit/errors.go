package kit

import (
	"errors"
	"fmt"
)

// Planning errors
var (
	ErrTooManySamples   = errors.New("too many samples for the MIDI note range")
	ErrUnsortedSamples  = errors.New("samples are not sorted by instrument name")
	ErrUnknownMethod    = errors.New("unknown variations method")
	ErrInvalidLevels    = errors.New("velocity levels must be greater than 0")
	ErrNoOutputChannels = errors.New("at least one output channel is required")
)

// TooManySamplesError is returned when the samples do not fit in [min, max].
type TooManySamplesError struct {
	Count int
	Min   int
	Max   int
}

// Available returns the number of notes in the range.
func (e *TooManySamplesError) Available() int {
	return e.Max - e.Min + 1
}

func (e *TooManySamplesError) Error() string {
	return fmt.Sprintf("%d samples exceed the MIDI note range [%d, %d] (%d notes)",
		e.Count, e.Min, e.Max, e.Available())
}

// Is reports whether target is ErrTooManySamples.
func (e *TooManySamplesError) Is(target error) bool {
	return target == ErrTooManySamples
}

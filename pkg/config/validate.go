package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks a transformed field value and returns a *ConfigurationError on violation.
type Validator func(field string, value interface{}) error

//nolint:gochecknoglobals // validator caches struct metadata and is safe for concurrent use
var validate = validator.New()

// checkTag runs a validator tag against value and converts failures into ConfigurationErrors.
func checkTag(field string, value interface{}, tag string) error {
	err := validate.Var(value, tag)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ConfigurationError{Field: field, Reason: err.Error(), Err: err}
	}

	return &ConfigurationError{Field: field, Reason: describe(fieldErrs[0], value), Err: err}
}

func describe(fe validator.FieldError, value interface{}) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return fmt.Sprintf("must be greater than %s, got %v", fe.Param(), value)
	case "min":
		if _, ok := value.([]string); ok {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s, got %v", fe.Param(), value)
	case "max":
		return fmt.Sprintf("must be at most %s, got %v", fe.Param(), value)
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %v", strings.ReplaceAll(fe.Param(), " ", ", "), value)
	case "unique":
		return fmt.Sprintf("must not contain duplicates, got %v", value)
	default:
		return fmt.Sprintf("failed %q check", fe.Tag())
	}
}

// Required fails on empty strings and empty lists.
func Required() Validator {
	return func(field string, value interface{}) error {
		return checkTag(field, value, "required")
	}
}

// Positive requires an integer greater than zero.
func Positive() Validator {
	return func(field string, value interface{}) error {
		return checkTag(field, value, "gt=0")
	}
}

// MIDINote requires an integer within [0,127].
func MIDINote() Validator {
	return func(field string, value interface{}) error {
		return checkTag(field, value, "min=0,max=127")
	}
}

// OneOf requires the value to be one of options.
func OneOf(options ...string) Validator {
	tag := "oneof=" + strings.Join(options, " ")

	return func(field string, value interface{}) error {
		return checkTag(field, value, tag)
	}
}

// NonEmptyList requires at least one list item.
func NonEmptyList() Validator {
	return func(field string, value interface{}) error {
		return checkTag(field, value, "min=1")
	}
}

// Unique requires list items to be distinct.
func Unique() Validator {
	return func(field string, value interface{}) error {
		return checkTag(field, value, "unique")
	}
}

// validateMIDIOrder checks min <= median <= max, each within [0,127].
func validateMIDIOrder(c *Config) error {
	for _, n := range []struct {
		key   string
		value int
	}{
		{KeyMIDINoteMin, c.MIDINoteMin},
		{KeyMIDINoteMedian, c.MIDINoteMedian},
		{KeyMIDINoteMax, c.MIDINoteMax},
	} {
		if err := MIDINote()(n.key, n.value); err != nil {
			return err
		}
	}

	if c.MIDINoteMin > c.MIDINoteMax {
		return invalid(KeyMIDINoteMin, "(%d) must not be greater than %s (%d)", c.MIDINoteMin, KeyMIDINoteMax, c.MIDINoteMax)
	}

	if c.MIDINoteMedian < c.MIDINoteMin {
		return invalid(KeyMIDINoteMedian, "(%d) must not be lower than %s (%d)", c.MIDINoteMedian, KeyMIDINoteMin, c.MIDINoteMin)
	}

	if c.MIDINoteMedian > c.MIDINoteMax {
		return invalid(KeyMIDINoteMedian, "(%d) must not be greater than %s (%d)", c.MIDINoteMedian, KeyMIDINoteMax, c.MIDINoteMax)
	}

	return nil
}

// validateMainChannels checks that every main channel is a declared channel.
func validateMainChannels(c *Config) error {
	for _, main := range c.MainChannels {
		if !slices.Contains(c.Channels, main) {
			return invalid(KeyMainChannels, "channel %q is not declared in %s %v", main, KeyChannels, c.Channels)
		}
	}

	return nil
}

package config

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Transform turns a normalized raw string into the typed value of a field.
type Transform func(field, raw string) (interface{}, error)

// StripQuotes removes one pair of matching surrounding single or double quotes.
func StripQuotes(value string) string {
	if len(value) < 2 {
		return value
	}

	first, last := value[0], value[len(value)-1]
	if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
		return value[1 : len(value)-1]
	}

	return value
}

// Normalize trims whitespace and surrounding quotes from a raw value.
func Normalize(raw string) string {
	return strings.TrimSpace(StripQuotes(strings.TrimSpace(raw)))
}

// SplitList splits a comma separated value, trimming every item and dropping empty ones.
func SplitList(raw string) []string {
	parts := strings.Split(Normalize(raw), ",")
	items := make([]string, 0, len(parts))

	for _, part := range parts {
		item := strings.TrimSpace(StripQuotes(strings.TrimSpace(part)))
		if item == "" {
			continue
		}
		items = append(items, item)
	}

	return items
}

// ToString keeps the value as a trimmed string.
func ToString(_, raw string) (interface{}, error) {
	return Normalize(raw), nil
}

// ToLower keeps the value as a trimmed, lower-cased string.
func ToLower(_, raw string) (interface{}, error) {
	return strings.ToLower(Normalize(raw)), nil
}

// ToInt parses the value as a base 10 integer.
func ToInt(field, raw string) (interface{}, error) {
	value := Normalize(raw)

	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, &ConfigurationError{
			Field:  field,
			Reason: "must be an integer, got " + strconv.Quote(value),
			Err:    err,
		}
	}

	return n, nil
}

// ToList splits the value on commas.
func ToList(_, raw string) (interface{}, error) {
	return SplitList(raw), nil
}

// ToPath cleans a path value. Empty stays empty.
func ToPath(_, raw string) (interface{}, error) {
	return cleanPath(Normalize(raw)), nil
}

// ToPathList splits the value on commas and cleans every path.
func ToPathList(_, raw string) (interface{}, error) {
	items := SplitList(raw)
	for i, item := range items {
		items[i] = cleanPath(item)
	}

	return items, nil
}

func cleanPath(p string) string {
	if p == "" {
		return ""
	}

	return filepath.Clean(p)
}

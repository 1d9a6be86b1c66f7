package config

// Source identifies where a raw configuration value came from.
type Source int

const (
	// SourceDefault is the built-in default table.
	SourceDefault Source = iota
	// SourceFile is the INI configuration file.
	SourceFile
	// SourceCLI is an explicitly supplied command line flag.
	SourceCLI
)

func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceFile:
		return "config file"
	case SourceCLI:
		return "command line"
	default:
		return "unknown"
	}
}

// Values holds raw, untransformed values keyed by field name. A key that is absent is
// "not set" by that source; a key mapped to an empty string is set to empty.
type Values map[string]string

// Lookup returns the raw value for key and whether the source set it.
func (v Values) Lookup(key string) (string, bool) {
	if v == nil {
		return "", false
	}

	val, ok := v[key]

	return val, ok
}

// RawValue is a single value as read from one source.
type RawValue struct {
	Value  string
	Source Source
	Set    bool
}

// merge picks the highest-precedence source that set key:
// default < file < cli.
func merge(key string, defaults, file, cli Values) RawValue {
	if v, ok := cli.Lookup(key); ok {
		return RawValue{Value: v, Source: SourceCLI, Set: true}
	}

	if v, ok := file.Lookup(key); ok {
		return RawValue{Value: v, Source: SourceFile, Set: true}
	}

	if v, ok := defaults.Lookup(key); ok {
		return RawValue{Value: v, Source: SourceDefault, Set: true}
	}

	return RawValue{Source: SourceDefault}
}

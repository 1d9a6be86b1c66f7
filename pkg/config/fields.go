package config

import "strings"

// Field keys. Config file keys use these names; CLI flags replace underscores with dashes.
const (
	KeySource           = "source"
	KeyTarget           = "target"
	KeyConfig           = "config"
	KeyName             = "name"
	KeyVersion          = "version"
	KeyDescription      = "description"
	KeyNotes            = "notes"
	KeyAuthor           = "author"
	KeyLicense          = "license"
	KeyWebsite          = "website"
	KeyLogo             = "logo"
	KeySampleRate       = "samplerate"
	KeyVelocityLevels   = "velocity_levels"
	KeyVariationsMethod = "variations_method"
	KeyMIDINoteMin      = "midi_note_min"
	KeyMIDINoteMax      = "midi_note_max"
	KeyMIDINoteMedian   = "midi_note_median"
	KeyExtensions       = "extensions"
	KeyChannels         = "channels"
	KeyMainChannels     = "main_channels"
	KeyExtraFiles       = "extra_files"
)

// DefaultConfigFile is looked up in the source directory when no config file is given.
const DefaultConfigFile = "drumgizmo-kit.ini"

// EmptyPolicy decides what happens when a field resolves to an empty value.
type EmptyPolicy int

const (
	// EmptyAllowed keeps the empty value.
	EmptyAllowed EmptyPolicy = iota
	// EmptyUsesDefault substitutes the default and emits a warning.
	EmptyUsesDefault
	// EmptyIsError fails resolution.
	EmptyIsError
)

// Field declares one configuration option.
type Field struct {
	Key        string
	Default    string
	Empty      EmptyPolicy
	Transform  Transform
	Validators []Validator
	// CLIOnly fields are ignored when found in a config file.
	CLIOnly   bool
	Shorthand string
	Usage     string

	bind func(c *Config, value interface{})
}

// Flag returns the command line flag name of the field.
func (f Field) Flag() string {
	return strings.ReplaceAll(f.Key, "_", "-")
}

// KeyFromFlag converts a flag or config file key into a field key.
func KeyFromFlag(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
}

// Fields returns the declarative field table, in resolution order. The source directory
// comes first since path-valued fields are checked relative to it.
func Fields() []Field {
	return []Field{
		{
			Key: KeySource, Empty: EmptyIsError, Transform: ToPath, CLIOnly: true, Shorthand: "s",
			Validators: []Validator{Required()},
			Usage:      "Source directory containing audio samples (required)",
			bind:       func(c *Config, v interface{}) { c.SourceDir = v.(string) },
		},
		{
			Key: KeyTarget, Empty: EmptyIsError, Transform: ToPath, CLIOnly: true, Shorthand: "t",
			Validators: []Validator{Required()},
			Usage:      "Target directory for the generated kit (required)",
			bind:       func(c *Config, v interface{}) { c.TargetDir = v.(string) },
		},
		{
			Key: KeyConfig, Default: DefaultConfigFile, Empty: EmptyUsesDefault, Transform: ToPath, CLIOnly: true, Shorthand: "c",
			Usage: "Configuration file, relative to the source directory",
			bind:  func(c *Config, v interface{}) { c.ConfigFile = v.(string) },
		},
		{
			Key: KeyName, Default: "DrumGizmo Kit", Empty: EmptyIsError, Transform: ToString,
			Validators: []Validator{Required()},
			Usage:      "Kit name",
			bind:       func(c *Config, v interface{}) { c.Name = v.(string) },
		},
		{
			Key: KeyVersion, Default: "1.0", Transform: ToString,
			Usage: "Kit version",
			bind:  func(c *Config, v interface{}) { c.Version = v.(string) },
		},
		{
			Key: KeyDescription, Transform: ToString,
			Usage: "Kit description",
			bind:  func(c *Config, v interface{}) { c.Description = v.(string) },
		},
		{
			Key: KeyNotes, Transform: ToString,
			Usage: "Additional notes about the kit",
			bind:  func(c *Config, v interface{}) { c.Notes = v.(string) },
		},
		{
			Key: KeyAuthor, Transform: ToString,
			Usage: "Kit author",
			bind:  func(c *Config, v interface{}) { c.Author = v.(string) },
		},
		{
			Key: KeyLicense, Default: "Private license", Transform: ToString,
			Usage: "Kit license",
			bind:  func(c *Config, v interface{}) { c.License = v.(string) },
		},
		{
			Key: KeyWebsite, Transform: ToString,
			Usage: "Kit website",
			bind:  func(c *Config, v interface{}) { c.Website = v.(string) },
		},
		{
			Key: KeyLogo, Transform: ToPath,
			Usage: "Kit logo filename, relative to the source directory",
			bind:  func(c *Config, v interface{}) { c.Logo = v.(string) },
		},
		{
			Key: KeySampleRate, Default: "44100", Empty: EmptyUsesDefault, Transform: ToInt,
			Validators: []Validator{Positive()},
			Usage:      "Sample rate in Hz",
			bind:       func(c *Config, v interface{}) { c.SampleRate = v.(int) },
		},
		{
			Key: KeyVelocityLevels, Default: "10", Empty: EmptyUsesDefault, Transform: ToInt,
			Validators: []Validator{Positive()},
			Usage:      "Number of velocity levels to generate",
			bind:       func(c *Config, v interface{}) { c.VelocityLevels = v.(int) },
		},
		{
			Key: KeyVariationsMethod, Default: string(MethodLinear), Empty: EmptyUsesDefault, Transform: ToLower,
			Validators: []Validator{OneOf(string(MethodLinear), string(MethodLogarithmic))},
			Usage:      "Volume variations method (linear or logarithmic)",
			bind:       func(c *Config, v interface{}) { c.VariationsMethod = VariationsMethod(v.(string)) },
		},
		{
			Key: KeyMIDINoteMin, Default: "0", Empty: EmptyUsesDefault, Transform: ToInt,
			Validators: []Validator{MIDINote()},
			Usage:      "Minimum MIDI note number allowed",
			bind:       func(c *Config, v interface{}) { c.MIDINoteMin = v.(int) },
		},
		{
			Key: KeyMIDINoteMax, Default: "127", Empty: EmptyUsesDefault, Transform: ToInt,
			Validators: []Validator{MIDINote()},
			Usage:      "Maximum MIDI note number allowed",
			bind:       func(c *Config, v interface{}) { c.MIDINoteMax = v.(int) },
		},
		{
			Key: KeyMIDINoteMedian, Default: "60", Empty: EmptyUsesDefault, Transform: ToInt,
			Validators: []Validator{MIDINote()},
			Usage:      "Median MIDI note for distributing instruments",
			bind:       func(c *Config, v interface{}) { c.MIDINoteMedian = v.(int) },
		},
		{
			Key: KeyExtensions, Default: "wav,WAV,flac,FLAC,ogg,OGG", Empty: EmptyIsError, Transform: ToList,
			Validators: []Validator{NonEmptyList()},
			Usage:      "Audio file extensions to process, comma-separated",
			bind:       func(c *Config, v interface{}) { c.Extensions = v.([]string) },
		},
		{
			Key: KeyChannels, Default: "Left,Right", Empty: EmptyIsError, Transform: ToList,
			Validators: []Validator{NonEmptyList(), Unique()},
			Usage:      "Audio channels to use, comma-separated",
			bind:       func(c *Config, v interface{}) { c.Channels = v.([]string) },
		},
		{
			Key: KeyMainChannels, Transform: ToList,
			Validators: []Validator{Unique()},
			Usage:      "Main audio channels, comma-separated",
			bind:       func(c *Config, v interface{}) { c.MainChannels = v.([]string) },
		},
		{
			Key: KeyExtraFiles, Transform: ToPathList,
			Usage: "Additional files to copy, comma-separated, relative to the source directory",
			bind:  func(c *Config, v interface{}) { c.ExtraFiles = v.([]string) },
		},
	}
}

// Lookup returns the field declared under key.
func Lookup(key string) (Field, bool) {
	for _, f := range Fields() {
		if f.Key == key {
			return f, true
		}
	}

	return Field{}, false
}

// Defaults returns the built-in default of every field that declares one.
func Defaults() Values {
	values := Values{}
	for _, f := range Fields() {
		if f.Default != "" {
			values[f.Key] = f.Default
		}
	}

	return values
}

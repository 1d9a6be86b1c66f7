// Package config resolves the kit configuration from built-in defaults, an INI file
// and command line values.
package config

import (
	"path/filepath"
	"slices"
)

// VariationsMethod selects the volume curve used for velocity variations.
type VariationsMethod string

const (
	// MethodLinear spreads variation volumes evenly between 1.0 and the floor.
	MethodLinear VariationsMethod = "linear"
	// MethodLogarithmic front-loads loudness along a log10 curve.
	MethodLogarithmic VariationsMethod = "logarithmic"
)

// Methods lists every supported variations method.
func Methods() []VariationsMethod {
	return []VariationsMethod{MethodLinear, MethodLogarithmic}
}

// Config is the resolved kit configuration. It is produced once by the Resolver and must
// be treated as read-only afterwards; use Clone to obtain a copy that can be modified.
type Config struct {
	SourceDir  string `yaml:"source"`
	TargetDir  string `yaml:"target"`
	ConfigFile string `yaml:"config,omitempty"`

	// Kit metadata
	Name        string `yaml:"name"`
	Version     string `yaml:"version,omitempty"`
	Description string `yaml:"description,omitempty"`
	Notes       string `yaml:"notes,omitempty"`
	Author      string `yaml:"author,omitempty"`
	License     string `yaml:"license,omitempty"`
	Website     string `yaml:"website,omitempty"`
	Logo        string `yaml:"logo,omitempty"`

	// Generation parameters
	SampleRate       int              `yaml:"samplerate"`
	VelocityLevels   int              `yaml:"velocity_levels"`
	VariationsMethod VariationsMethod `yaml:"variations_method"`
	MIDINoteMin      int              `yaml:"midi_note_min"`
	MIDINoteMax      int              `yaml:"midi_note_max"`
	MIDINoteMedian   int              `yaml:"midi_note_median"`
	Extensions       []string         `yaml:"extensions"`
	Channels         []string         `yaml:"channels"`
	MainChannels     []string         `yaml:"main_channels"`
	ExtraFiles       []string         `yaml:"extra_files,omitempty"`
}

// NoteRange returns the number of MIDI notes available between min and max, inclusive.
func (c *Config) NoteRange() int {
	return c.MIDINoteMax - c.MIDINoteMin + 1
}

// IsMainChannel reports whether the named output channel is flagged as main.
func (c *Config) IsMainChannel(name string) bool {
	return slices.Contains(c.MainChannels, name)
}

// ExtraPaths returns the logo and extra files as paths under the source directory,
// logo first.
func (c *Config) ExtraPaths() []string {
	var paths []string

	if c.Logo != "" {
		paths = append(paths, filepath.Join(c.SourceDir, c.Logo))
	}

	for _, f := range c.ExtraFiles {
		paths = append(paths, filepath.Join(c.SourceDir, f))
	}

	return paths
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	out.Extensions = slices.Clone(c.Extensions)
	out.Channels = slices.Clone(c.Channels)
	out.MainChannels = slices.Clone(c.MainChannels)
	out.ExtraFiles = slices.Clone(c.ExtraFiles)

	return &out
}

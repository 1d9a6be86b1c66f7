// Package kit plans how discovered samples become a drum kit: the MIDI note of every
// instrument, its output channel routing and its velocity variations.
package kit

import (
	"fmt"
	"path/filepath"
)

// MIDI velocity bounds used by note map entries.
const (
	VelocityMin = 0
	VelocityMax = 127
)

// SourceSample is one discovered audio file.
type SourceSample struct {
	Path       string  `yaml:"path"`
	Instrument string  `yaml:"instrument"`
	Channels   int     `yaml:"channels"`
	SampleRate int     `yaml:"samplerate,omitempty"`
	BitDepth   int     `yaml:"bits,omitempty"`
	Duration   float64 `yaml:"duration,omitempty"`
}

// AudioInfo is what a probe reports about an audio file.
type AudioInfo struct {
	Channels   int
	SampleRate int
	BitDepth   int
	Duration   float64
}

// Apply copies probed properties onto the sample.
func (s *SourceSample) Apply(info AudioInfo) {
	s.Channels = info.Channels
	s.SampleRate = info.SampleRate
	s.BitDepth = info.BitDepth
	s.Duration = info.Duration
}

// Extension returns the file extension of the sample, including the dot.
func (s SourceSample) Extension() string {
	return filepath.Ext(s.Path)
}

// NoteAssignment maps an instrument to a MIDI note.
type NoteAssignment struct {
	Instrument string `yaml:"instrument"`
	Note       int    `yaml:"note"`
}

// ChannelRoute connects one logical kit channel to a channel of the sample file.
type ChannelRoute struct {
	In   string `yaml:"in"`
	Out  string `yaml:"out"`
	Main bool   `yaml:"main"`
	// FileChannel is the 1-based channel index in the sample file.
	FileChannel int `yaml:"filechannel"`
}

// ChannelMapping holds one route per declared kit channel for an instrument.
type ChannelMapping struct {
	Instrument string         `yaml:"instrument"`
	Routes     []ChannelRoute `yaml:"routes"`
}

// Variation is one volume-scaled copy of a sample.
type Variation struct {
	Index  int     `yaml:"index"`
	Volume float64 `yaml:"volume"`
	Power  float64 `yaml:"power"`
}

// Number returns the 1-based variation number used in file and sample names.
func (v Variation) Number() int {
	return v.Index + 1
}

// FileName returns the variation file name, "<n>-<instrument><ext>".
func (v Variation) FileName(instrument, ext string) string {
	return fmt.Sprintf("%d-%s%s", v.Number(), instrument, ext)
}

// SampleName returns the descriptor sample name, "<instrument>-<n>".
func (v Variation) SampleName(instrument string) string {
	return fmt.Sprintf("%s-%d", instrument, v.Number())
}

// VelocityVariation holds the variations of an instrument, loudest first.
type VelocityVariation struct {
	Instrument string      `yaml:"instrument"`
	Levels     []Variation `yaml:"levels"`
}

// Plan is the output of the planner, one entry per sample in sample order.
type Plan struct {
	Notes      []NoteAssignment
	Channels   []ChannelMapping
	Variations []VelocityVariation
}

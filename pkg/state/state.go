// Package state holds the read-only record of a run: the resolved configuration, the
// discovered samples and everything the planner derived from them.
package state

import (
	"fmt"
	"slices"

	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
)

// Instrument groups everything known about one sample.
type Instrument struct {
	Sample     kit.SourceSample
	Note       int
	Routes     []kit.ChannelRoute
	Variations []kit.Variation
}

// RunState is built once by Build and never modified afterwards. Accessors return
// copies so that consumers cannot alter what other consumers read.
type RunState struct {
	cfg         *config.Config
	instruments []Instrument
	index       map[string]int
}

// Build assembles a RunState from a resolved configuration, the sorted samples and the
// plan computed for them. It only checks that every sample has exactly one entry of
// each kind, in sample order.
func Build(cfg *config.Config, samples []kit.SourceSample, plan *kit.Plan) (*RunState, error) {
	if cfg == nil {
		return nil, &InternalConsistencyError{Reason: "missing configuration"}
	}

	if plan == nil {
		return nil, &InternalConsistencyError{Reason: "missing plan"}
	}

	n := len(samples)
	for _, c := range []struct {
		kind string
		got  int
	}{
		{"note assignments", len(plan.Notes)},
		{"channel mappings", len(plan.Channels)},
		{"velocity variations", len(plan.Variations)},
	} {
		if c.got != n {
			return nil, &InternalConsistencyError{
				Reason: fmt.Sprintf("%d samples but %d %s", n, c.got, c.kind),
			}
		}
	}

	rs := &RunState{
		cfg:         cfg.Clone(),
		instruments: make([]Instrument, n),
		index:       make(map[string]int, n),
	}

	for i, sample := range samples {
		name := sample.Instrument

		if _, dup := rs.index[name]; dup {
			return nil, &InternalConsistencyError{Instrument: name, Reason: "duplicate instrument"}
		}

		if plan.Notes[i].Instrument != name ||
			plan.Channels[i].Instrument != name ||
			plan.Variations[i].Instrument != name {
			return nil, &InternalConsistencyError{Instrument: name, Reason: "plan entries out of sample order"}
		}

		rs.index[name] = i
		rs.instruments[i] = Instrument{
			Sample:     sample,
			Note:       plan.Notes[i].Note,
			Routes:     slices.Clone(plan.Channels[i].Routes),
			Variations: slices.Clone(plan.Variations[i].Levels),
		}
	}

	return rs, nil
}

// Config returns a copy of the resolved configuration.
func (rs *RunState) Config() *config.Config {
	return rs.cfg.Clone()
}

// Len returns the number of instruments.
func (rs *RunState) Len() int {
	return len(rs.instruments)
}

// Instruments returns every instrument in sample order.
func (rs *RunState) Instruments() []Instrument {
	out := make([]Instrument, len(rs.instruments))
	for i := range rs.instruments {
		out[i] = rs.instruments[i].clone()
	}

	return out
}

// Names returns the instrument names in sample order.
func (rs *RunState) Names() []string {
	names := make([]string, len(rs.instruments))
	for i := range rs.instruments {
		names[i] = rs.instruments[i].Sample.Instrument
	}

	return names
}

// Samples returns the discovered samples in order.
func (rs *RunState) Samples() []kit.SourceSample {
	samples := make([]kit.SourceSample, len(rs.instruments))
	for i := range rs.instruments {
		samples[i] = rs.instruments[i].Sample
	}

	return samples
}

// Instrument looks up an instrument by name.
func (rs *RunState) Instrument(name string) (Instrument, bool) {
	i, ok := rs.index[name]
	if !ok {
		return Instrument{}, false
	}

	return rs.instruments[i].clone(), true
}

// Note returns the MIDI note of an instrument.
func (rs *RunState) Note(name string) (int, bool) {
	i, ok := rs.index[name]
	if !ok {
		return 0, false
	}

	return rs.instruments[i].Note, true
}

// Channels returns the channel routes of an instrument.
func (rs *RunState) Channels(name string) ([]kit.ChannelRoute, bool) {
	i, ok := rs.index[name]
	if !ok {
		return nil, false
	}

	return slices.Clone(rs.instruments[i].Routes), true
}

// Variations returns the velocity variations of an instrument, loudest first.
func (rs *RunState) Variations(name string) ([]kit.Variation, bool) {
	i, ok := rs.index[name]
	if !ok {
		return nil, false
	}

	return slices.Clone(rs.instruments[i].Variations), true
}

// VariationCount returns the total number of variation files the run produces.
func (rs *RunState) VariationCount() int {
	total := 0
	for i := range rs.instruments {
		total += len(rs.instruments[i].Variations)
	}

	return total
}

func (in Instrument) clone() Instrument {
	in.Routes = slices.Clone(in.Routes)
	in.Variations = slices.Clone(in.Variations)

	return in
}

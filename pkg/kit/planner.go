package kit

import (
	"fmt"

	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/sirupsen/logrus"
)

// Planner computes note, channel and velocity assignments from a resolved configuration.
type Planner struct {
	log logrus.FieldLogger
}

// NewPlanner creates a new planner
func NewPlanner(log logrus.FieldLogger) *Planner {
	return &Planner{
		log: log.WithField("component", "planner"),
	}
}

// Plan assigns every sample a note, a channel mapping and its velocity variations.
// Samples must already be sorted by instrument name; they are not re-sorted.
func (p *Planner) Plan(cfg *config.Config, samples []SourceSample) (*Plan, error) {
	for i := 1; i < len(samples); i++ {
		if samples[i-1].Instrument >= samples[i].Instrument {
			return nil, fmt.Errorf("%w: %q before %q", ErrUnsortedSamples, samples[i-1].Instrument, samples[i].Instrument)
		}
	}

	if len(cfg.Channels) == 0 {
		return nil, ErrNoOutputChannels
	}

	notes, packed, err := DistributeNotes(len(samples), cfg.MIDINoteMin, cfg.MIDINoteMax, cfg.MIDINoteMedian)
	if err != nil {
		return nil, err
	}

	if packed {
		p.log.WithFields(logrus.Fields{
			"samples": len(samples),
			"median":  cfg.MIDINoteMedian,
			"first":   notes[0],
			"last":    notes[len(notes)-1],
		}).Warn("Samples cannot be centered on the median note, packing them against the range bound")
	}

	if len(samples) > 0 && len(samples) == cfg.NoteRange() {
		p.log.WithFields(logrus.Fields{
			"samples":  len(samples),
			"note_min": cfg.MIDINoteMin,
			"note_max": cfg.MIDINoteMax,
		}).Warn("Samples use every note of the MIDI range")
	}

	variations, err := Variations(cfg.VariationsMethod, cfg.VelocityLevels)
	if err != nil {
		return nil, err
	}

	plan := &Plan{
		Notes:      make([]NoteAssignment, len(samples)),
		Channels:   make([]ChannelMapping, len(samples)),
		Variations: make([]VelocityVariation, len(samples)),
	}

	for i, sample := range samples {
		plan.Notes[i] = NoteAssignment{Instrument: sample.Instrument, Note: notes[i]}
		plan.Channels[i] = ChannelMapping{
			Instrument: sample.Instrument,
			Routes:     MapChannels(cfg.Channels, cfg.MainChannels, sample.Channels),
		}

		levels := make([]Variation, len(variations))
		copy(levels, variations)
		plan.Variations[i] = VelocityVariation{Instrument: sample.Instrument, Levels: levels}

		p.log.WithFields(logrus.Fields{
			"instrument": sample.Instrument,
			"note":       notes[i],
		}).Debug("Mapped instrument to MIDI note")
	}

	return plan, nil
}

// Truncate returns the samples that fit in the MIDI note range of cfg.
func Truncate(cfg *config.Config, samples []SourceSample) []SourceSample {
	if n := cfg.NoteRange(); len(samples) > n {
		return samples[:n]
	}

	return samples
}

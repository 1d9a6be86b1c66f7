package state

import (
	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"gopkg.in/yaml.v3"
)

type snapshot struct {
	Config      *config.Config       `yaml:"config"`
	Instruments []instrumentSnapshot `yaml:"instruments"`
}

type instrumentSnapshot struct {
	Name       string             `yaml:"name"`
	Sample     kit.SourceSample   `yaml:"sample"`
	Note       int                `yaml:"note"`
	Routes     []kit.ChannelRoute `yaml:"channels"`
	Variations []kit.Variation    `yaml:"variations"`
}

// MarshalYAML renders the run state for dry-run output.
func (rs *RunState) MarshalYAML() (interface{}, error) {
	snap := snapshot{
		Config:      rs.cfg,
		Instruments: make([]instrumentSnapshot, len(rs.instruments)),
	}

	for i, in := range rs.instruments {
		snap.Instruments[i] = instrumentSnapshot{
			Name:       in.Sample.Instrument,
			Sample:     in.Sample,
			Note:       in.Note,
			Routes:     in.Routes,
			Variations: in.Variations,
		}
	}

	return snap, nil
}

// Dump returns the YAML document of the run state.
func (rs *RunState) Dump() ([]byte, error) {
	return yaml.Marshal(rs)
}

package generator

import (
	"fmt"

	"github.com/drumgizmo-tools/dgkit/pkg/audio"
	"github.com/drumgizmo-tools/dgkit/pkg/descriptor"
)

// Options contains tool-level settings that are not part of the kit configuration
type Options struct {
	Audio       audio.Config       `yaml:"audio"`
	Descriptor  descriptor.Options `yaml:"descriptor"`
	MetricsFile string             `yaml:"metricsFile,omitempty"`
}

// Validate validates the options
func (o *Options) Validate() error {
	if err := o.Audio.Validate(); err != nil {
		return fmt.Errorf("audio: %w", err)
	}

	if err := o.Descriptor.Validate(); err != nil {
		return fmt.Errorf("descriptor: %w", err)
	}

	return nil
}

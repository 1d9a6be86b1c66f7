package cmd

import (
	"errors"
	"os"

	"github.com/creasty/defaults"
	"github.com/drumgizmo-tools/dgkit/pkg/generator"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidJobs is returned when --jobs is not positive
	ErrInvalidJobs = errors.New("--jobs must be positive")
)

// LoadToolConfig loads the tool settings from a YAML file. Without a path the
// defaults are returned.
func LoadToolConfig(path string) (*generator.Options, error) {
	opts := &generator.Options{}

	if err := defaults.Set(opts); err != nil {
		return nil, err
	}

	if path == "" {
		return opts, nil
	}

	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, opts); err != nil {
		return nil, err
	}

	return opts, nil
}

// applyToolFlags overrides tool settings with the flags given on the command line.
func applyToolFlags(opts *generator.Options, jobs int, jobsSet bool, metricsFile string, metricsSet bool) error {
	if jobsSet {
		if jobs <= 0 {
			return ErrInvalidJobs
		}

		opts.Audio.Jobs = jobs
	}

	if metricsSet {
		opts.MetricsFile = metricsFile
	}

	opts.Descriptor.AppVersion = Release

	return opts.Validate()
}

// Package discovery scans a source directory for audio samples
package discovery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/drumgizmo-tools/dgkit/pkg/audio"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/observability"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Define static errors
var (
	ErrNoExtensions = errors.New("no audio extensions configured")
)

// Prober reads the properties of an audio file.
type Prober interface {
	Probe(ctx context.Context, path string) (kit.AudioInfo, error)
}

// Options controls a scan.
type Options struct {
	Dir        string
	Extensions []string
	// MaxSamples is the number of available MIDI notes; zero disables the check.
	MaxSamples int
}

// SampleDiscovery finds the samples of a kit.
type SampleDiscovery struct {
	log    logrus.FieldLogger
	fs     afero.Fs
	prober Prober
}

// NewSampleDiscovery creates a new discovery instance. A nil prober leaves every sample
// as mono with unknown properties.
func NewSampleDiscovery(log logrus.FieldLogger, fs afero.Fs, prober Prober) *SampleDiscovery {
	return &SampleDiscovery{
		log:    log.WithField("component", "discovery"),
		fs:     fs,
		prober: prober,
	}
}

// InstrumentName derives the instrument name of a file: the base name without
// extension, a leading "N-" velocity prefix (N in 1..9) and any "_converted" marker.
func InstrumentName(path string) string {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if len(name) > 2 && name[0] >= '1' && name[0] <= '9' && name[1] == '-' {
		name = name[2:]
	}

	return strings.ReplaceAll(name, "_converted", "")
}

// Discover lists the files of opts.Dir (not recursing) whose extension is in
// opts.Extensions, sorted by instrument name. When two files share an instrument name
// the first one in file name order is kept.
func (d *SampleDiscovery) Discover(ctx context.Context, opts Options) ([]kit.SourceSample, error) {
	if len(opts.Extensions) == 0 {
		return nil, ErrNoExtensions
	}

	accepted := make(map[string]struct{}, len(opts.Extensions))
	for _, ext := range opts.Extensions {
		accepted[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	entries, err := afero.ReadDir(d.fs, opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read source directory %s: %w", opts.Dir, err)
	}

	// afero.ReadDir sorts by file name
	var samples []kit.SourceSample

	seen := make(map[string]string)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if _, ok := accepted[ext]; !ok {
			continue
		}

		path := filepath.Join(opts.Dir, entry.Name())
		name := InstrumentName(path)

		if name == "" {
			d.log.WithField("file", path).Warn("Skipping file with an empty instrument name")
			observability.RecordSampleSkipped("empty_name")

			continue
		}

		if first, dup := seen[name]; dup {
			d.log.WithFields(logrus.Fields{
				"instrument": name,
				"file":       path,
				"kept":       first,
			}).Warn("Skipping duplicate instrument")
			observability.RecordSampleSkipped("duplicate")

			continue
		}

		seen[name] = path

		samples = append(samples, kit.SourceSample{
			Path:       path,
			Instrument: name,
			Channels:   1,
		})
	}

	slices.SortFunc(samples, func(a, b kit.SourceSample) int {
		return strings.Compare(a.Instrument, b.Instrument)
	})

	if err := d.probe(ctx, samples); err != nil {
		return nil, err
	}

	for range samples {
		observability.RecordSampleDiscovered()
	}

	d.log.WithFields(logrus.Fields{
		"dir":     opts.Dir,
		"samples": len(samples),
	}).Info("Discovered samples")

	if opts.MaxSamples > 0 && len(samples) > opts.MaxSamples {
		d.log.WithFields(logrus.Fields{
			"samples":   len(samples),
			"available": opts.MaxSamples,
		}).Warn("More samples than available MIDI notes")
	}

	return samples, nil
}

func (d *SampleDiscovery) probe(ctx context.Context, samples []kit.SourceSample) error {
	if d.prober == nil {
		return nil
	}

	for i := range samples {
		info, err := d.prober.Probe(ctx, samples[i].Path)
		if err != nil {
			if errors.Is(err, audio.ErrDependencyMissing) || ctx.Err() != nil {
				return err
			}

			d.log.WithFields(logrus.Fields{
				"file":  samples[i].Path,
				"error": err,
			}).Warn("Failed to probe sample, assuming mono")
			observability.RecordError("discovery", "probe")

			continue
		}

		samples[i].Apply(info)

		if samples[i].Channels < 1 {
			samples[i].Channels = 1
		}

		d.log.WithFields(logrus.Fields{
			"instrument": samples[i].Instrument,
			"channels":   samples[i].Channels,
			"samplerate": samples[i].SampleRate,
		}).Debug("Probed sample")
	}

	return nil
}

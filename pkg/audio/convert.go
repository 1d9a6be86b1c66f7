package audio

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/creasty/defaults"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/observability"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// SamplesDir is the per-instrument directory holding variation files.
const SamplesDir = "samples"

// Outcome is the result of rendering one variation file.
type Outcome struct {
	Instrument string
	Variation  kit.Variation
	Output     string
	Duration   time.Duration
	Err        error
}

// Converter renders the velocity variations of a run with sox.
type Converter struct {
	log    logrus.FieldLogger
	fs     afero.Fs
	runner Runner
	cfg    Config
}

// NewConverter creates a converter; fs is used to create the sample directories.
// Unset settings take their defaults.
func NewConverter(log logrus.FieldLogger, fs afero.Fs, runner Runner, cfg Config) *Converter {
	log = log.WithField("component", "audio")

	if err := defaults.Set(&cfg); err != nil {
		log.WithError(err).Warn("Failed to apply conversion defaults")
	}

	if cfg.Jobs < 1 {
		cfg.Jobs = 1
	}

	return &Converter{
		log:    log,
		fs:     fs,
		runner: runner,
		cfg:    cfg,
	}
}

// InstrumentDir returns the directory of an instrument inside the kit.
func InstrumentDir(target, instrument string) string {
	return filepath.Join(target, instrument)
}

// VariationPath returns the path of a rendered variation file inside the kit.
func VariationPath(target string, sample kit.SourceSample, v kit.Variation) string {
	return filepath.Join(InstrumentDir(target, sample.Instrument), SamplesDir, v.FileName(sample.Instrument, sample.Extension()))
}

// Args returns the sox arguments rendering one variation.
func Args(input, output string, sampleRate int, volume float64) []string {
	return []string{
		input,
		"-r", strconv.Itoa(sampleRate),
		output,
		"vol", strconv.FormatFloat(volume, 'f', 6, 64),
	}
}

type job struct {
	sample    kit.SourceSample
	variation kit.Variation
	output    string
}

// Convert renders every variation of every instrument, at most cfg.Jobs at a time.
// Failed files do not stop the others; every outcome is returned in instrument then
// variation order, along with the joined ConversionErrors.
func (c *Converter) Convert(ctx context.Context, rs *state.RunState) ([]Outcome, error) {
	cfg := rs.Config()

	var jobs []job

	for _, in := range rs.Instruments() {
		dir := filepath.Join(InstrumentDir(cfg.TargetDir, in.Sample.Instrument), SamplesDir)
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}

		for _, v := range in.Variations {
			jobs = append(jobs, job{
				sample:    in.Sample,
				variation: v,
				output:    VariationPath(cfg.TargetDir, in.Sample, v),
			})
		}
	}

	c.log.WithFields(logrus.Fields{
		"instruments": rs.Len(),
		"files":       len(jobs),
		"jobs":        c.cfg.Jobs,
		"samplerate":  cfg.SampleRate,
	}).Info("Converting samples")

	outcomes := make([]Outcome, len(jobs))

	var (
		mu   sync.Mutex
		errs []error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Jobs)

	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			outcomes[i] = c.convert(gctx, j, cfg.SampleRate)

			if err := outcomes[i].Err; err != nil {
				// a missing sox fails every job the same way
				if errors.Is(err, ErrDependencyMissing) {
					return err
				}

				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	return outcomes, errors.Join(errs...)
}

func (c *Converter) convert(ctx context.Context, j job, sampleRate int) Outcome {
	started := time.Now()
	output, err := c.runner.Run(ctx, c.cfg.SoxBinary, Args(j.sample.Path, j.output, sampleRate, j.variation.Volume)...)
	duration := time.Since(started)

	outcome := Outcome{
		Instrument: j.sample.Instrument,
		Variation:  j.variation,
		Output:     j.output,
		Duration:   duration,
	}

	log := c.log.WithFields(logrus.Fields{
		"instrument": j.sample.Instrument,
		"variation":  j.variation.Number(),
		"volume":     j.variation.Volume,
		"output":     j.output,
	})

	if err != nil {
		observability.RecordConversion(j.sample.Instrument, observability.StatusFailed, duration.Seconds())
		observability.RecordError("audio", "conversion")

		if errors.Is(err, ErrDependencyMissing) {
			outcome.Err = err
			return outcome
		}

		outcome.Err = &ConversionError{
			Instrument: j.sample.Instrument,
			Output:     j.output,
			Log:        strings.TrimSpace(string(output)),
			Err:        err,
		}

		log.WithFields(logrus.Fields{
			"error": err,
			"log":   strings.TrimSpace(string(output)),
		}).Error("Conversion failed")

		return outcome
	}

	observability.RecordConversion(j.sample.Instrument, observability.StatusSuccess, duration.Seconds())
	log.WithField("duration", duration).Debug("Converted variation")

	return outcome
}

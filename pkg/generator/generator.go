// Package generator turns a run state into a kit on disk: it prepares the target
// directory, renders the variations, writes the descriptors and copies extra files.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/drumgizmo-tools/dgkit/pkg/audio"
	"github.com/drumgizmo-tools/dgkit/pkg/descriptor"
	"github.com/drumgizmo-tools/dgkit/pkg/observability"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/drumgizmo-tools/dgkit/pkg/workspace"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Result summarizes a generation.
type Result struct {
	Outcomes    []audio.Outcome
	Descriptors []string
	Extras      []string
	Elapsed     time.Duration
}

// Converted returns the number of variation files rendered.
func (r *Result) Converted() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil && o.Output != "" {
			n++
		}
	}

	return n
}

// Failed returns the number of variation files that could not be rendered.
func (r *Result) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err != nil {
			n++
		}
	}

	return n
}

// Generator runs the output stages of a kit build.
type Generator struct {
	log       logrus.FieldLogger
	opts      Options
	workspace *workspace.Workspace
	converter *audio.Converter
	writer    *descriptor.Writer
	checkDeps func(names ...string) error
	now       func() time.Time
}

// New creates a generator writing through fs and running sox through runner.
func New(log logrus.FieldLogger, fs afero.Fs, runner audio.Runner, opts Options) *Generator {
	return &Generator{
		log:       log.WithField("component", "generator"),
		opts:      opts,
		workspace: workspace.New(log, fs),
		converter: audio.NewConverter(log, fs, runner, opts.Audio),
		writer:    descriptor.NewWriter(log, fs, opts.Descriptor),
		checkDeps: audio.CheckDependency,
		now:       time.Now,
	}
}

// Run generates the kit described by rs. Nothing is written before sox is known to be
// available. When a variation fails to convert the descriptors are not written and the
// partial result is returned with the error.
func (g *Generator) Run(ctx context.Context, rs *state.RunState) (*Result, error) {
	started := g.now()
	cfg := rs.Config()
	res := &Result{}

	if err := g.checkDeps(g.opts.Audio.SoxBinary); err != nil {
		return res, err
	}

	if err := g.workspace.Prepare(cfg.TargetDir); err != nil {
		return res, err
	}

	outcomes, err := g.converter.Convert(ctx, rs)
	res.Outcomes = outcomes

	if err != nil {
		res.Elapsed = g.now().Sub(started)
		return res, fmt.Errorf("failed to convert samples: %w", err)
	}

	res.Descriptors, err = g.writer.WriteAll(rs)
	if err != nil {
		res.Elapsed = g.now().Sub(started)
		return res, fmt.Errorf("failed to write descriptors: %w", err)
	}

	res.Extras, err = g.workspace.CopyFiles(cfg.TargetDir, cfg.ExtraPaths()...)
	if err != nil {
		res.Elapsed = g.now().Sub(started)
		return res, fmt.Errorf("failed to copy extra files: %w", err)
	}

	res.Elapsed = g.now().Sub(started)
	observability.RecordRun(res.Elapsed.Seconds())

	g.log.WithFields(logrus.Fields{
		"target":      cfg.TargetDir,
		"instruments": rs.Len(),
		"files":       res.Converted(),
		"descriptors": len(res.Descriptors),
		"extras":      len(res.Extras),
		"elapsed":     res.Elapsed,
	}).Info("Kit generated")

	return res, nil
}

package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/drumgizmo-tools/dgkit/pkg/audio"
	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/console"
	"github.com/drumgizmo-tools/dgkit/pkg/discovery"
	"github.com/drumgizmo-tools/dgkit/pkg/generator"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/observability"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // replaced in tests
var checkDependency = audio.CheckDependency

// addKitFlags declares one string flag per kit configuration field. Values stay raw
// strings so that the resolver applies the same transforms as for the config file.
func addKitFlags(cmd *cobra.Command) {
	for _, field := range config.Fields() {
		usage := field.Usage
		if field.Default != "" {
			usage = fmt.Sprintf("%s (default %q)", usage, field.Default)
		}

		cmd.Flags().StringP(field.Flag(), field.Shorthand, "", usage)
	}
}

// cliValues collects the kit flags that were given on the command line.
func cliValues(cmd *cobra.Command) (config.Values, error) {
	values := config.Values{}

	for _, field := range config.Fields() {
		if !cmd.Flags().Changed(field.Flag()) {
			continue
		}

		v, err := cmd.Flags().GetString(field.Flag())
		if err != nil {
			return nil, err
		}

		values[field.Key] = v
	}

	return values, nil
}

func toolOptions(cmd *cobra.Command) (*generator.Options, error) {
	opts, err := LoadToolConfig(toolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to load tool config: %w", err)
	}

	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return nil, err
	}

	metricsFile, err := cmd.Flags().GetString("metrics-file")
	if err != nil {
		return nil, err
	}

	if err := applyToolFlags(opts, jobs, cmd.Flags().Changed("jobs"), metricsFile, cmd.Flags().Changed("metrics-file")); err != nil {
		return nil, err
	}

	return opts, nil
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	// Silence usage on error
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if appVersion {
		printVersion(cmd.OutOrStdout())
		return nil
	}

	log := logger.WithField("run_id", uuid.New().String())

	opts, err := toolOptions(cmd)
	if err != nil {
		return err
	}

	cli, err := cliValues(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := console.NewPrinter(out, rawOutput || !console.IsTerminal(out))

	err = generate(cmd.Context(), log, afero.NewOsFs(), printer, opts, cli, dryRun)

	if metricsErr := observability.WriteTextfile(opts.MetricsFile, log); metricsErr != nil {
		log.WithError(metricsErr).Error("Failed to write metrics")
	}

	return err
}

func generate(ctx context.Context, log logrus.FieldLogger, fs afero.Fs, printer *console.Printer, opts *generator.Options, cli config.Values, dry bool) error {
	resolver := config.NewResolver(log, fs)

	file, err := resolver.LoadFile(cli)
	if err != nil {
		return err
	}

	cfg, err := resolver.Resolve(config.Defaults(), file, cli)
	if err != nil {
		return err
	}

	printer.Metadata(cfg)

	var prober discovery.Prober = audio.NewSoxi(audio.ExecRunner{}, opts.Audio.SoxiBinary)

	if err := checkDependency(opts.Audio.SoxiBinary); err != nil {
		if !dry {
			return err
		}

		log.WithError(err).Warn("Sample properties are unknown, assuming mono samples")

		prober = nil
	}

	samples, err := discovery.NewSampleDiscovery(log, fs, prober).Discover(ctx, discovery.Options{
		Dir:        cfg.SourceDir,
		Extensions: cfg.Extensions,
		MaxSamples: cfg.NoteRange(),
	})
	if err != nil {
		return err
	}

	printer.Samples(samples)

	if dry && len(samples) > cfg.NoteRange() {
		printer.Warning("%d samples exceed the %d available MIDI notes, only the first %d are mapped",
			len(samples), cfg.NoteRange(), cfg.NoteRange())

		samples = kit.Truncate(cfg, samples)
	}

	plan, err := kit.NewPlanner(log).Plan(cfg, samples)
	if err != nil {
		return err
	}

	rs, err := state.Build(cfg, samples, plan)
	if err != nil {
		return err
	}

	printer.Mapping(rs)

	if dry {
		return printRunState(printer, rs)
	}

	res, err := generator.New(log, fs, audio.ExecRunner{}, *opts).Run(ctx, rs)
	if err != nil {
		var convErr *audio.ConversionError
		if errors.As(err, &convErr) && res != nil {
			printer.Warning("%d of %d variation files failed to convert", res.Failed(), len(res.Outcomes))
		}

		return err
	}

	printer.Summary(rs, res)

	return nil
}

func printRunState(printer *console.Printer, rs *state.RunState) error {
	data, err := rs.Dump()
	if err != nil {
		return fmt.Errorf("failed to render run state: %w", err)
	}

	printer.Section("Run State")
	printer.Line("%s", data)
	printer.Line("Dry run mode enabled, stopping here")

	return nil
}

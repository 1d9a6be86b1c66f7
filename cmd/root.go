// Package cmd contains the CLI commands for dgkit
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Global vars needed for cobra CLI
var (
	logger *logrus.Logger

	verbose    bool
	rawOutput  bool
	dryRun     bool
	appVersion bool
	toolConfig string
)

// rootCmd represents the base command
//
//nolint:gochecknoglobals // Cobra commands are typically global
var rootCmd = &cobra.Command{
	Use:   "dgkit -s <source> -t <target>",
	Short: "DrumGizmo kit generator - Build a drum kit from a directory of samples",
	Long: `dgkit turns a flat directory of audio samples into a DrumGizmo kit: velocity
variations rendered with SoX, one MIDI note per instrument, channel routing and
the drumkit, instrument and midimap descriptors.

Settings are read from built-in defaults, then from the drumgizmo-kit.ini file
of the source directory (or --config), then from the command line.`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: initLogging,
	RunE:              runGenerate,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&rawOutput, "raw-output", "r", false, "disable colors and decorations")

	rootCmd.Flags().BoolVarP(&dryRun, "dry-run", "x", false, "resolve and plan the kit, print it and stop before writing anything")
	rootCmd.Flags().BoolVarP(&appVersion, "app-version", "V", false, "print the dgkit version and exit")
	rootCmd.Flags().StringVar(&toolConfig, "tool-config", "", "YAML file with tool settings (jobs, sox binaries, descriptor metadata)")
	rootCmd.Flags().Int("jobs", 0, "number of parallel sox processes (default from tool config, 4)")
	rootCmd.Flags().String("metrics-file", "", "write Prometheus metrics to this file when done")

	addKitFlags(rootCmd)

	// Initialize logger
	logger = logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func initLogging(cmd *cobra.Command, _ []string) error {
	logLevel, err := cmd.Flags().GetString("log-level")
	if err != nil {
		logLevel = "info" // Default to info if error
	}

	level, parseErr := logrus.ParseLevel(logLevel)
	if parseErr != nil {
		logger.WithError(parseErr).Warn("Invalid log level, defaulting to info")
		level = logrus.InfoLevel
	}

	if verbose {
		level = logrus.DebugLevel
	}

	logger.SetLevel(level)
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:    true,
		DisableColors:    rawOutput,
		DisableTimestamp: rawOutput,
	})

	return nil
}

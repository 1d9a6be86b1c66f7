package cmd

import (
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"
)

//nolint:gochecknoglobals // Build-time variables for version info
var (
	// Release is the current release version
	Release = "dev"
	// GitCommit is the git commit hash
	GitCommit = "none"
	// GOOS is the operating system
	GOOS = runtime.GOOS
	// GOARCH is the architecture
	GOARCH = runtime.GOARCH
)

//nolint:gochecknoglobals // Cobra commands are typically global
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the version of dgkit.",
	Long:  `Prints the version of dgkit.`,
	Run: func(cmd *cobra.Command, _ []string) {
		printVersion(cmd.OutOrStdout())
	},
}

func printVersion(out io.Writer) {
	fmt.Fprintf(out, "Version: %s\nCommit: %s\nOS/Arch: %s/%s\n",
		Release, GitCommit, GOOS, GOARCH)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// Package audio drives the SoX command line tools: soxi to inspect source samples and
// sox to render the velocity variations of every instrument.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// Runner runs an external program and returns its combined output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run implements Runner. A program missing from PATH is reported as ErrDependencyMissing.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 -- binary names come from the tool options, arguments are file paths
	cmd := exec.CommandContext(ctx, name, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return output, fmt.Errorf("%w: %s", ErrDependencyMissing, name)
		}

		return output, err
	}

	return output, nil
}

//nolint:gochecknoglobals // replaced in tests
var lookPath = exec.LookPath

// CheckDependency verifies that every named program can be found in PATH.
func CheckDependency(names ...string) error {
	for _, name := range names {
		if _, err := lookPath(name); err != nil {
			return fmt.Errorf("%w: %s", ErrDependencyMissing, name)
		}
	}

	return nil
}

package audio

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/drumgizmo-tools/dgkit/pkg/kit"
)

// DefaultSoxiBinary is the program used to inspect audio files.
const DefaultSoxiBinary = "soxi"

// Soxi reads audio properties with the soxi program.
type Soxi struct {
	runner Runner
	binary string
}

// NewSoxi creates a prober running binary through runner.
func NewSoxi(runner Runner, binary string) *Soxi {
	if binary == "" {
		binary = DefaultSoxiBinary
	}

	return &Soxi{runner: runner, binary: binary}
}

// Probe returns the channel count, sample rate, bit depth and duration of path.
func (s *Soxi) Probe(ctx context.Context, path string) (kit.AudioInfo, error) {
	var info kit.AudioInfo

	ints := []struct {
		flag string
		dst  *int
	}{
		{"-c", &info.Channels},
		{"-r", &info.SampleRate},
		{"-b", &info.BitDepth},
	}

	for _, q := range ints {
		out, err := s.query(ctx, q.flag, path)
		if err != nil {
			return kit.AudioInfo{}, err
		}

		v, err := strconv.Atoi(out)
		if err != nil {
			return kit.AudioInfo{}, fmt.Errorf("%w: %s %s: unexpected output %q", ErrProbeFailed, s.binary, q.flag, out)
		}

		*q.dst = v
	}

	out, err := s.query(ctx, "-D", path)
	if err != nil {
		return kit.AudioInfo{}, err
	}

	info.Duration, err = strconv.ParseFloat(out, 64)
	if err != nil {
		return kit.AudioInfo{}, fmt.Errorf("%w: %s -D: unexpected output %q", ErrProbeFailed, s.binary, out)
	}

	return info, nil
}

func (s *Soxi) query(ctx context.Context, flag, path string) (string, error) {
	output, err := s.runner.Run(ctx, s.binary, flag, path)
	if err != nil {
		if errors.Is(err, ErrDependencyMissing) {
			return "", err
		}

		return "", fmt.Errorf("%w: %s %s %s: %v: %s", ErrProbeFailed, s.binary, flag, path, err, strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}

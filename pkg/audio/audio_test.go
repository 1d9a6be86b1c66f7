package audio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type call struct {
	name string
	args []string
}

// fakeRunner answers commands from a lookup keyed by the joined arguments.
type fakeRunner struct {
	mu      sync.Mutex
	calls   []call
	outputs map[string]string
	fail    func(name string, args []string) error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: args})
	f.mu.Unlock()

	if f.fail != nil {
		if err := f.fail(name, args); err != nil {
			return []byte("sox FAIL formats: can't open output file"), err
		}
	}

	return []byte(f.outputs[strings.Join(args, " ")]), nil
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func testRunState(t *testing.T) *state.RunState {
	t.Helper()

	cfg := &config.Config{
		SourceDir:        "/kits/source",
		TargetDir:        "/kits/target",
		Name:             "Test Kit",
		SampleRate:       48000,
		VelocityLevels:   3,
		VariationsMethod: config.MethodLinear,
		MIDINoteMin:      0,
		MIDINoteMax:      127,
		MIDINoteMedian:   60,
		Channels:         []string{"Left", "Right"},
	}
	samples := []kit.SourceSample{
		{Path: "/kits/source/Kick.wav", Instrument: "Kick", Channels: 2},
		{Path: "/kits/source/Snare.flac", Instrument: "Snare", Channels: 1},
	}

	plan, err := kit.NewPlanner(testLogger()).Plan(cfg, samples)
	require.NoError(t, err)

	rs, err := state.Build(cfg, samples, plan)
	require.NoError(t, err)

	return rs
}

func TestArgs(t *testing.T) {
	assert.Equal(t,
		[]string{"/in/Kick.wav", "-r", "44100", "/out/1-Kick.wav", "vol", "0.625000"},
		Args("/in/Kick.wav", "/out/1-Kick.wav", 44100, 0.625),
	)
}

func TestVariationPath(t *testing.T) {
	sample := kit.SourceSample{Path: "/src/Snare.flac", Instrument: "Snare"}

	assert.Equal(t,
		filepath.Join("/kit", "Snare", "samples", "2-Snare.flac"),
		VariationPath("/kit", sample, kit.Variation{Index: 1}),
	)
}

func TestConverter_Convert(t *testing.T) {
	fs := afero.NewMemMapFs()
	runner := &fakeRunner{}
	rs := testRunState(t)

	converter := NewConverter(testLogger(), fs, runner, Config{Jobs: 2, SoxBinary: "sox", SoxiBinary: "soxi"})

	outcomes, err := converter.Convert(context.Background(), rs)
	require.NoError(t, err)
	require.Len(t, outcomes, 6)

	assert.Equal(t, "Kick", outcomes[0].Instrument)
	assert.Equal(t, filepath.Join("/kits/target", "Kick", "samples", "1-Kick.wav"), outcomes[0].Output)
	assert.Equal(t, "Snare", outcomes[5].Instrument)
	assert.Equal(t, filepath.Join("/kits/target", "Snare", "samples", "3-Snare.flac"), outcomes[5].Output)

	for _, o := range outcomes {
		assert.NoError(t, o.Err)
	}

	require.Len(t, runner.calls, 6)
	for _, c := range runner.calls {
		assert.Equal(t, "sox", c.name)
		assert.Equal(t, "48000", c.args[2])
	}

	for _, dir := range []string{"/kits/target/Kick/samples", "/kits/target/Snare/samples"} {
		ok, err := afero.DirExists(fs, dir)
		require.NoError(t, err)
		assert.True(t, ok, dir)
	}
}

func TestConverter_UnsetConfigUsesDefaults(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "zero value", cfg: Config{}},
		{name: "binary only", cfg: Config{SoxBinary: "sox"}},
		{name: "negative jobs", cfg: Config{Jobs: -2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{}
			converter := NewConverter(testLogger(), afero.NewMemMapFs(), runner, tt.cfg)

			assert.GreaterOrEqual(t, converter.cfg.Jobs, 1)
			assert.Equal(t, "sox", converter.cfg.SoxBinary)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			outcomes, err := converter.Convert(ctx, testRunState(t))
			require.NoError(t, err)
			assert.Len(t, outcomes, 6)
			assert.Len(t, runner.calls, 6)
		})
	}
}

func TestConverter_ReportsFailures(t *testing.T) {
	runner := &fakeRunner{
		fail: func(_ string, args []string) error {
			if strings.HasSuffix(args[3], "2-Snare.flac") {
				return errors.New("exit status 2")
			}

			return nil
		},
	}

	converter := NewConverter(testLogger(), afero.NewMemMapFs(), runner, Config{Jobs: 1, SoxBinary: "sox", SoxiBinary: "soxi"})

	outcomes, err := converter.Convert(context.Background(), testRunState(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConversionFailed)

	var convErr *ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, "Snare", convErr.Instrument)
	assert.Contains(t, convErr.Log, "can't open output file")

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}

	assert.Equal(t, 1, failed)
	assert.Len(t, runner.calls, 6, "a failed file does not stop the others")
}

func TestConverter_MissingSox(t *testing.T) {
	runner := &fakeRunner{
		fail: func(name string, _ []string) error {
			return fmt.Errorf("%w: %s", ErrDependencyMissing, name)
		},
	}

	converter := NewConverter(testLogger(), afero.NewMemMapFs(), runner, Config{Jobs: 1, SoxBinary: "sox", SoxiBinary: "soxi"})

	_, err := converter.Convert(context.Background(), testRunState(t))
	assert.ErrorIs(t, err, ErrDependencyMissing)
}

func TestSoxi_Probe(t *testing.T) {
	runner := &fakeRunner{
		outputs: map[string]string{
			"-c /src/Kick.wav": "2\n",
			"-r /src/Kick.wav": "44100\n",
			"-b /src/Kick.wav": "24\n",
			"-D /src/Kick.wav": "1.250000\n",
		},
	}

	info, err := NewSoxi(runner, "").Probe(context.Background(), "/src/Kick.wav")
	require.NoError(t, err)

	assert.Equal(t, kit.AudioInfo{Channels: 2, SampleRate: 44100, BitDepth: 24, Duration: 1.25}, info)
	require.Len(t, runner.calls, 4)
	assert.Equal(t, DefaultSoxiBinary, runner.calls[0].name)
}

func TestSoxi_ProbeErrors(t *testing.T) {
	tests := []struct {
		name        string
		runner      *fakeRunner
		expectedErr error
	}{
		{
			name:        "unparseable output",
			runner:      &fakeRunner{outputs: map[string]string{"-c /src/Kick.wav": "two"}},
			expectedErr: ErrProbeFailed,
		},
		{
			name: "command failure",
			runner: &fakeRunner{fail: func(string, []string) error {
				return errors.New("exit status 1")
			}},
			expectedErr: ErrProbeFailed,
		},
		{
			name: "missing soxi",
			runner: &fakeRunner{fail: func(name string, _ []string) error {
				return fmt.Errorf("%w: %s", ErrDependencyMissing, name)
			}},
			expectedErr: ErrDependencyMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSoxi(tt.runner, "soxi").Probe(context.Background(), "/src/Kick.wav")
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestCheckDependency(t *testing.T) {
	original := lookPath
	t.Cleanup(func() { lookPath = original })

	lookPath = func(file string) (string, error) {
		if file == "sox" {
			return "/usr/bin/sox", nil
		}

		return "", errors.New("not found")
	}

	assert.NoError(t, CheckDependency("sox"))

	err := CheckDependency("sox", "soxi")
	require.ErrorIs(t, err, ErrDependencyMissing)
	assert.Contains(t, err.Error(), "soxi")
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, (&Config{Jobs: 1, SoxBinary: "sox", SoxiBinary: "soxi"}).Validate())
	assert.ErrorIs(t, (&Config{Jobs: 0, SoxBinary: "sox", SoxiBinary: "soxi"}).Validate(), ErrInvalidOptions)
	assert.ErrorIs(t, (&Config{Jobs: 1, SoxiBinary: "soxi"}).Validate(), ErrInvalidOptions)
}

package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/drumgizmo-tools/dgkit/pkg/audio"
	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls int
	fail  string
}

func (f *fakeRunner) Run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++

	if f.fail != "" && strings.HasSuffix(args[3], f.fail) {
		return []byte("sox FAIL"), errors.New("exit status 2")
	}

	return nil, nil
}

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func testOptions(t *testing.T) Options {
	t.Helper()

	var opts Options
	require.NoError(t, defaults.Set(&opts))
	require.NoError(t, opts.Validate())

	return opts
}

func testFs(t *testing.T) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range map[string]string{
		"/kits/source/Kick.wav":    "RIFF",
		"/kits/source/Snare.wav":   "RIFF",
		"/kits/source/logo.png":    "PNG",
		"/kits/source/README.md":   "# Kit",
		"/kits/target/stale.xml":   "<old/>",
		"/kits/target/Old/old.wav": "RIFF",
	} {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	return fs
}

func testRunState(t *testing.T) *state.RunState {
	t.Helper()

	cfg := &config.Config{
		SourceDir:        "/kits/source",
		TargetDir:        "/kits/target",
		Name:             "Test Kit",
		Logo:             "logo.png",
		SampleRate:       44100,
		VelocityLevels:   4,
		VariationsMethod: config.MethodLinear,
		MIDINoteMin:      0,
		MIDINoteMax:      127,
		MIDINoteMedian:   60,
		Channels:         []string{"Left", "Right"},
		ExtraFiles:       []string{"README.md"},
	}
	samples := []kit.SourceSample{
		{Path: "/kits/source/Kick.wav", Instrument: "Kick", Channels: 2},
		{Path: "/kits/source/Snare.wav", Instrument: "Snare", Channels: 2},
	}

	plan, err := kit.NewPlanner(testLogger()).Plan(cfg, samples)
	require.NoError(t, err)

	rs, err := state.Build(cfg, samples, plan)
	require.NoError(t, err)

	return rs
}

func newTestGenerator(t *testing.T, fs afero.Fs, runner audio.Runner) *Generator {
	t.Helper()

	g := New(testLogger(), fs, runner, testOptions(t))
	g.checkDeps = func(...string) error { return nil }

	tick := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	g.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	return g
}

func TestGenerator_Run(t *testing.T) {
	fs := testFs(t)
	runner := &fakeRunner{}

	res, err := newTestGenerator(t, fs, runner).Run(context.Background(), testRunState(t))
	require.NoError(t, err)

	assert.Equal(t, 8, runner.calls)
	assert.Equal(t, 8, res.Converted())
	assert.Equal(t, 0, res.Failed())
	assert.Len(t, res.Descriptors, 4)
	assert.Equal(t, []string{"/kits/target/logo.png", "/kits/target/README.md"}, res.Extras)
	assert.Positive(t, res.Elapsed)

	for _, path := range []string{
		"/kits/target/drumkit.xml",
		"/kits/target/midimap.xml",
		"/kits/target/Kick/Kick.xml",
		"/kits/target/Snare/Snare.xml",
		"/kits/target/logo.png",
		"/kits/target/README.md",
	} {
		ok, err := afero.Exists(fs, path)
		require.NoError(t, err)
		assert.True(t, ok, path)
	}

	for _, stale := range []string{"/kits/target/stale.xml", "/kits/target/Old"} {
		ok, err := afero.Exists(fs, stale)
		require.NoError(t, err)
		assert.False(t, ok, stale)
	}

	ok, err := afero.DirExists(fs, "/kits/target/Kick/samples")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerator_MissingSoxLeavesTargetUntouched(t *testing.T) {
	fs := testFs(t)
	runner := &fakeRunner{}

	g := newTestGenerator(t, fs, runner)
	g.checkDeps = func(names ...string) error {
		return fmt.Errorf("%w: %s", audio.ErrDependencyMissing, names[0])
	}

	_, err := g.Run(context.Background(), testRunState(t))
	assert.ErrorIs(t, err, audio.ErrDependencyMissing)
	assert.Zero(t, runner.calls)

	ok, err := afero.Exists(fs, "/kits/target/stale.xml")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerator_ConversionFailure(t *testing.T) {
	fs := testFs(t)
	runner := &fakeRunner{fail: "3-Snare.wav"}

	res, err := newTestGenerator(t, fs, runner).Run(context.Background(), testRunState(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, audio.ErrConversionFailed)

	assert.Equal(t, 7, res.Converted())
	assert.Equal(t, 1, res.Failed())
	assert.Empty(t, res.Descriptors)

	ok, err := afero.Exists(fs, "/kits/target/drumkit.xml")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestGenerator_MissingExtraFile(t *testing.T) {
	fs := testFs(t)
	require.NoError(t, fs.Remove("/kits/source/README.md"))

	res, err := newTestGenerator(t, fs, &fakeRunner{}).Run(context.Background(), testRunState(t))
	require.Error(t, err)
	assert.Len(t, res.Descriptors, 4)
	assert.Equal(t, []string{"/kits/target/logo.png"}, res.Extras)
}

func TestOptions_Validate(t *testing.T) {
	opts := testOptions(t)
	assert.Equal(t, 4, opts.Audio.Jobs)
	assert.Equal(t, "sox", opts.Audio.SoxBinary)
	assert.Equal(t, "dgkit", opts.Descriptor.AppName)

	opts.Audio.Jobs = 0
	assert.ErrorIs(t, opts.Validate(), audio.ErrInvalidOptions)
}

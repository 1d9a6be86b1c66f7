package descriptor

import (
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creasty/defaults"
	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)

	return log
}

func testConfig() *config.Config {
	return &config.Config{
		SourceDir:        "/kits/source",
		TargetDir:        "/kits/target",
		Name:             "Test Kit",
		Version:          "1.0",
		License:          "CC-BY-SA",
		Author:           "Someone",
		Logo:             "/kits/source/logo.png",
		SampleRate:       44100,
		VelocityLevels:   2,
		VariationsMethod: config.MethodLinear,
		MIDINoteMin:      0,
		MIDINoteMax:      127,
		MIDINoteMedian:   60,
		Channels:         []string{"Left", "Right", "Room"},
		MainChannels:     []string{"Left", "Right"},
	}
}

func testRunState(t *testing.T, cfg *config.Config) *state.RunState {
	t.Helper()

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

func testOptions(t *testing.T) Options {
	t.Helper()

	var opts Options
	require.NoError(t, defaults.Set(&opts))
	opts.AppVersion = "1.2.3"

	return opts
}

func TestBuildDrumkit(t *testing.T) {
	doc := BuildDrumkit(testRunState(t, testConfig()), "created")

	assert.Equal(t, "1.0", doc.Version)
	assert.Equal(t, "Test Kit", doc.Name)
	assert.Equal(t, 44100, doc.SampleRate)
	assert.Equal(t, "Test Kit", doc.Metadata.Title)
	assert.Equal(t, &Logo{Src: "logo.png"}, doc.Metadata.Logo)
	assert.Equal(t, []Channel{{Name: "Left"}, {Name: "Right"}, {Name: "Room"}}, doc.Channels)

	require.Len(t, doc.Instruments, 2)
	assert.Equal(t, "Kick/Kick.xml", doc.Instruments[0].File)
	assert.Equal(t, []ChannelMap{
		{In: "Left", Out: "Left", Main: "true"},
		{In: "Right", Out: "Right", Main: "true"},
		{In: "Room", Out: "Room"},
	}, doc.Instruments[0].ChannelMaps)
}

func TestDrumkitOmitsEmptyMetadata(t *testing.T) {
	cfg := testConfig()
	cfg.Author = ""
	cfg.Logo = ""

	data, err := Marshal(BuildDrumkit(testRunState(t, cfg), "created"))
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, xml.Header))
	assert.Contains(t, out, "<title>Test Kit</title>")
	assert.Contains(t, out, "<license>CC-BY-SA</license>")
	for _, tag := range []string{"<author>", "<description>", "<notes>", "<website>", "<logo"} {
		assert.NotContains(t, out, tag)
	}
}

func TestBuildInstrument(t *testing.T) {
	rs := testRunState(t, testConfig())

	snare, ok := rs.Instrument("Snare")
	require.True(t, ok)

	doc := BuildInstrument(snare)
	assert.Equal(t, "2.0", doc.Version)
	assert.Equal(t, "Snare", doc.Name)
	require.Len(t, doc.Samples, 2)

	assert.Equal(t, "Snare-1", doc.Samples[0].Name)
	assert.Equal(t, "1.000000", doc.Samples[0].Power)
	assert.Equal(t, "Snare-2", doc.Samples[1].Name)
	assert.Equal(t, "0.250000", doc.Samples[1].Power)

	assert.Equal(t, []AudioFile{
		{Channel: "Left", File: "samples/2-Snare.flac", FileChannel: 1},
		{Channel: "Right", File: "samples/2-Snare.flac", FileChannel: 1},
		{Channel: "Room", File: "samples/2-Snare.flac", FileChannel: 1},
	}, doc.Samples[1].AudioFiles)

	kick, ok := rs.Instrument("Kick")
	require.True(t, ok)

	files := BuildInstrument(kick).Samples[0].AudioFiles
	assert.Equal(t, []int{1, 2, 1}, []int{files[0].FileChannel, files[1].FileChannel, files[2].FileChannel})
}

func TestBuildMIDIMap(t *testing.T) {
	data, err := Marshal(BuildMIDIMap(testRunState(t, testConfig())))
	require.NoError(t, err)

	var doc MIDIMap
	require.NoError(t, xml.Unmarshal(data, &doc))

	assert.Equal(t, []NoteMap{
		{Note: 60, Instr: "Kick", VelMin: 0, VelMax: 127},
		{Note: 61, Instr: "Snare", VelMin: 0, VelMax: 127},
	}, doc.Maps)
}

func TestWriter_Created(t *testing.T) {
	w := NewWriter(testLogger(), afero.NewMemMapFs(), testOptions(t)).
		WithClock(func() time.Time { return time.Date(2025, 3, 4, 5, 6, 7, 0, time.Local) })

	created, err := w.Created(testRunState(t, testConfig()))
	require.NoError(t, err)
	assert.Equal(t, "Generated on 2025-03-04 05:06:07 with dgkit v1.2.3 (https://github.com/drumgizmo-tools/dgkit)", created)
}

func TestWriter_CreatedUsesKitFields(t *testing.T) {
	opts := testOptions(t)
	opts.Created = "{{ .Kit | upper }} {{ .KitVersion }}: {{ .Instruments }} instruments at {{ .SampleRate }} Hz"
	require.NoError(t, opts.Validate())

	created, err := NewWriter(testLogger(), afero.NewMemMapFs(), opts).Created(testRunState(t, testConfig()))
	require.NoError(t, err)
	assert.Equal(t, "TEST KIT 1.0: 2 instruments at 44100 Hz", created)
}

func TestWriter_WriteAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(testLogger(), fs, testOptions(t))

	written, err := w.WriteAll(testRunState(t, testConfig()))
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join("/kits/target", "drumkit.xml"),
		filepath.Join("/kits/target", "Kick", "Kick.xml"),
		filepath.Join("/kits/target", "Snare", "Snare.xml"),
		filepath.Join("/kits/target", "midimap.xml"),
	}, written)

	data, err := afero.ReadFile(fs, filepath.Join("/kits/target", "Kick", "Kick.xml"))
	require.NoError(t, err)

	var doc Instrument
	require.NoError(t, xml.Unmarshal(data, &doc))
	assert.Equal(t, "Kick", doc.Name)
	assert.Len(t, doc.Samples, 2)
}

func TestWriter_WriteAllWithoutInstruments(t *testing.T) {
	cfg := testConfig()

	plan, err := kit.NewPlanner(testLogger()).Plan(cfg, nil)
	require.NoError(t, err)

	rs, err := state.Build(cfg, nil, plan)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	written, err := NewWriter(testLogger(), fs, testOptions(t)).WriteAll(rs)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/kits/target", "drumkit.xml")}, written)

	exists, err := afero.Exists(fs, filepath.Join("/kits/target", "midimap.xml"))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWriter_BadTemplate(t *testing.T) {
	opts := testOptions(t)
	opts.Created = "{{ .Now | nosuchfunc }}"
	assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)

	_, err := NewWriter(testLogger(), afero.NewMemMapFs(), opts).WriteAll(testRunState(t, testConfig()))
	assert.Error(t, err)
}

func TestWriter_ReadOnlyFs(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())

	_, err := NewWriter(testLogger(), fs, testOptions(t)).WriteAll(testRunState(t, testConfig()))
	assert.Error(t, err)
}

func TestOptions_Validate(t *testing.T) {
	opts := testOptions(t)
	assert.NoError(t, opts.Validate())

	opts.Created = ""
	assert.ErrorIs(t, opts.Validate(), ErrInvalidOptions)
}

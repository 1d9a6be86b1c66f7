// Package console prints human readable run reports, decorated with colors unless raw
// output is requested or stdout is not a terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/drumgizmo-tools/dgkit/pkg/config"
	"github.com/drumgizmo-tools/dgkit/pkg/generator"
	"github.com/drumgizmo-tools/dgkit/pkg/kit"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/fatih/color"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/term"
)

// Printer writes reports to an output stream.
type Printer struct {
	out     io.Writer
	raw     bool
	section *color.Color
	label   *color.Color
	success *color.Color
	warning *color.Color
}

// IsTerminal reports whether out is a terminal.
func IsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// NewPrinter creates a printer. Raw output drops colors and decorations.
func NewPrinter(out io.Writer, raw bool) *Printer {
	p := &Printer{
		out:     out,
		raw:     raw,
		section: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.Bold),
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
	}

	for _, c := range []*color.Color{p.section, p.label, p.success, p.warning} {
		if raw {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}

	return p
}

// Raw reports whether decorations are disabled.
func (p *Printer) Raw() bool {
	return p.raw
}

// Section starts a report section.
func (p *Printer) Section(title string) {
	if p.raw {
		fmt.Fprintf(p.out, "\n%s\n", title)
		return
	}

	fmt.Fprintf(p.out, "\n%s\n", p.section.Sprintf("=== %s ===", title))
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Field prints a labelled value, skipping empty ones unless always is set.
func (p *Printer) Field(name, value string, always bool) {
	if value == "" && !always {
		return
	}

	fmt.Fprintf(p.out, "%s %s\n", p.label.Sprint(name+":"), value)
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.success.Sprintf(format, args...))
}

// Warning prints a warning line.
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.warning.Sprintf(format, args...))
}

// Metadata prints the resolved kit configuration.
func (p *Printer) Metadata(cfg *config.Config) {
	p.Section("Kit Metadata")

	p.Field("Name", cfg.Name, true)
	p.Field("Version", cfg.Version, true)
	p.Field("Description", cfg.Description, false)
	p.Field("Notes", cfg.Notes, false)
	p.Field("Author", cfg.Author, false)
	p.Field("License", cfg.License, true)
	p.Field("Website", cfg.Website, false)
	p.Field("Logo", cfg.Logo, false)
	p.Field("Sample rate", fmt.Sprintf("%d Hz", cfg.SampleRate), true)
	p.Field("Velocity levels", fmt.Sprintf("%d", cfg.VelocityLevels), true)
	p.Field("Volume variations method", string(cfg.VariationsMethod), true)
	p.Field("MIDI note range", fmt.Sprintf("[%d, %d]", cfg.MIDINoteMin, cfg.MIDINoteMax), true)
	p.Field("MIDI note median", fmt.Sprintf("%d", cfg.MIDINoteMedian), true)
	p.Field("Audio extensions", strings.Join(cfg.Extensions, ", "), true)
	p.Field("Audio channels", strings.Join(cfg.Channels, ", "), true)
	p.Field("Main channels", strings.Join(cfg.MainChannels, ", "), true)
	p.Field("Extra files", strings.Join(cfg.ExtraFiles, ", "), false)
}

// Samples prints the discovered samples.
func (p *Printer) Samples(samples []kit.SourceSample) {
	p.Section("Source Samples")

	if len(samples) == 0 {
		p.Warning("No audio samples found")
		return
	}

	p.Line("Found %d audio samples:", len(samples))

	for _, s := range samples {
		p.Line("  - %s: %s (%s)", s.Instrument, filepath.Base(s.Path), describe(s))
	}
}

func describe(s kit.SourceSample) string {
	parts := []string{fmt.Sprintf("%d ch", s.Channels)}

	if s.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%d Hz", s.SampleRate))
	}

	if s.BitDepth > 0 {
		parts = append(parts, fmt.Sprintf("%d bit", s.BitDepth))
	}

	if s.Duration > 0 {
		parts = append(parts, fmt.Sprintf("%.2fs", s.Duration))
	}

	return strings.Join(parts, ", ")
}

// NoteName returns the name of a MIDI note, such as "C3" for 60.
func NoteName(note int) string {
	if note < 0 || note > 127 {
		return "?"
	}

	return midi.Note(uint8(note)).String()
}

// Mapping prints the MIDI note of every instrument.
func (p *Printer) Mapping(rs *state.RunState) {
	p.Section("MIDI Mapping Preview")

	if rs.Len() == 0 {
		p.Warning("No instruments found for MIDI mapping")
		return
	}

	for _, in := range rs.Instruments() {
		p.Line("  - MIDI note %3d (%-4s): %s", in.Note, NoteName(in.Note), in.Sample.Instrument)
	}
}

// Summary prints the outcome of a generation.
func (p *Printer) Summary(rs *state.RunState, res *generator.Result) {
	cfg := rs.Config()

	p.Section("Summary")

	if p.raw {
		p.Line("Processing complete.")
	} else {
		p.Line("Processing complete in %.2f seconds.", res.Elapsed.Round(10*time.Millisecond).Seconds())
	}

	p.Line("DrumGizmo kit created in %s", cfg.TargetDir)
	p.Line("")
	p.Line("Main files:")

	for _, f := range res.Descriptors {
		if filepath.Dir(f) == filepath.Clean(cfg.TargetDir) {
			p.Line("  - %s", f)
		}
	}

	p.Line("")
	p.Line("Number of instruments created: %d", rs.Len())
	p.Line("Variation files: %d converted, %d failed", res.Converted(), res.Failed())

	for _, in := range rs.Instruments() {
		p.Line("  - MIDI note %d: %s: %s", in.Note, in.Sample.Instrument, filepath.Base(in.Sample.Path))
	}

	if len(res.Extras) > 0 {
		p.Line("")
		p.Line("Extra files copied:")

		for _, f := range res.Extras {
			p.Line("  - %s", f)
		}
	}

	if res.Failed() > 0 {
		p.Warning("Some variation files could not be converted")
		return
	}

	p.Success("Kit generation completed successfully!")
}

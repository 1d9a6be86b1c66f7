package descriptor

import (
	"encoding/xml"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/drumgizmo-tools/dgkit/pkg/observability"
	"github.com/drumgizmo-tools/dgkit/pkg/state"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Define static errors
var (
	ErrInvalidOptions = errors.New("invalid descriptor options")
)

// Options controls descriptor metadata.
type Options struct {
	AppName    string `yaml:"appName" default:"dgkit"`
	AppVersion string `yaml:"appVersion" default:"dev"`
	AppLink    string `yaml:"appLink" default:"https://github.com/drumgizmo-tools/dgkit"`
	// Created is the template of the metadata "created" line, executed with CreatedData
	// and the Sprig functions.
	Created string `yaml:"created" default:"Generated on {{ .Now | date \"2006-01-02 15:04:05\" }} with {{ .App }} v{{ .Version }} ({{ .Link }})"`
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.Created == "" {
		return fmt.Errorf("%w: created template is required", ErrInvalidOptions)
	}

	if _, err := o.createdTemplate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}

	return nil
}

func (o *Options) createdTemplate() (*template.Template, error) {
	tmpl, err := template.New("created").Funcs(sprig.TxtFuncMap()).Parse(o.Created)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created template: %w", err)
	}

	return tmpl, nil
}

// CreatedData is what the created template can refer to.
type CreatedData struct {
	Now         time.Time
	App         string
	Version     string
	Link        string
	Kit         string
	KitVersion  string
	Instruments int
	SampleRate  int
}

// Writer writes the descriptors of a run below its target directory.
type Writer struct {
	log        logrus.FieldLogger
	fs         afero.Fs
	opts       Options
	created    *template.Template
	createdErr error
	now        func() time.Time
}

// NewWriter creates a descriptor writer.
func NewWriter(log logrus.FieldLogger, fs afero.Fs, opts Options) *Writer {
	w := &Writer{
		log:  log.WithField("component", "descriptor"),
		fs:   fs,
		opts: opts,
		now:  time.Now,
	}

	// A bad template is reported when the first descriptor is written.
	w.created, w.createdErr = opts.createdTemplate()

	return w
}

// WithClock replaces the clock used for the creation line.
func (w *Writer) WithClock(now func() time.Time) *Writer {
	w.now = now
	return w
}

// Created renders the metadata creation line of a run.
func (w *Writer) Created(rs *state.RunState) (string, error) {
	if w.createdErr != nil {
		return "", w.createdErr
	}

	cfg := rs.Config()

	var buf strings.Builder
	if err := w.created.Execute(&buf, CreatedData{
		Now:         w.now(),
		App:         w.opts.AppName,
		Version:     w.opts.AppVersion,
		Link:        w.opts.AppLink,
		Kit:         cfg.Name,
		KitVersion:  cfg.Version,
		Instruments: rs.Len(),
		SampleRate:  cfg.SampleRate,
	}); err != nil {
		return "", fmt.Errorf("failed to render created line: %w", err)
	}

	return buf.String(), nil
}

// WriteAll writes drumkit.xml, every instrument descriptor and midimap.xml, and returns
// the written paths.
func (w *Writer) WriteAll(rs *state.RunState) ([]string, error) {
	target := rs.Config().TargetDir
	written := make([]string, 0, rs.Len()+2)

	created, err := w.Created(rs)
	if err != nil {
		return nil, err
	}

	p := filepath.Join(target, DrumkitFile)
	if err := w.write(p, "drumkit", BuildDrumkit(rs, created)); err != nil {
		return written, err
	}

	written = append(written, p)

	for _, in := range rs.Instruments() {
		p := filepath.Join(target, filepath.FromSlash(InstrumentFile(in.Sample.Instrument)))
		if err := w.write(p, "instrument", BuildInstrument(in)); err != nil {
			return written, err
		}

		written = append(written, p)
	}

	if rs.Len() == 0 {
		w.log.Warn("No instruments found for MIDI mapping, skipping " + MIDIMapFile)
		return written, nil
	}

	p = filepath.Join(target, MIDIMapFile)
	if err := w.write(p, "midimap", BuildMIDIMap(rs)); err != nil {
		return written, err
	}

	written = append(written, p)

	return written, nil
}

func (w *Writer) write(path, kind string, doc interface{}) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}

	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		observability.RecordError("descriptor", kind)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	observability.RecordDescriptor(kind)

	w.log.WithFields(logrus.Fields{
		"kind": kind,
		"path": path,
	}).Debug("Wrote descriptor")

	return nil
}

// Marshal encodes a descriptor as an indented XML document.
func Marshal(doc interface{}) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(xml.Header)+len(body)+1)
	out = append(out, xml.Header...)
	out = append(out, body...)
	out = append(out, '\n')

	return out, nil
}

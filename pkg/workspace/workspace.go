// Package workspace prepares the target directory of a kit and copies the extra files
// that ship with it.
package workspace

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/drumgizmo-tools/dgkit/pkg/observability"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Define static errors
var (
	ErrNotADirectory = errors.New("target exists and is not a directory")
)

// Workspace manages files below a kit target directory.
type Workspace struct {
	log logrus.FieldLogger
	fs  afero.Fs
}

// New creates a new workspace
func New(log logrus.FieldLogger, fs afero.Fs) *Workspace {
	return &Workspace{
		log: log.WithField("component", "workspace"),
		fs:  fs,
	}
}

// Prepare creates target, or removes everything inside it when it already exists.
func (w *Workspace) Prepare(target string) error {
	info, err := w.fs.Stat(target)

	switch {
	case errors.Is(err, os.ErrNotExist):
		w.log.WithField("target", target).Info("Creating target directory")

		if err := w.fs.MkdirAll(target, 0o755); err != nil {
			return fmt.Errorf("failed to create target directory %s: %w", target, err)
		}

		return nil
	case err != nil:
		return fmt.Errorf("failed to stat target directory %s: %w", target, err)
	case !info.IsDir():
		return fmt.Errorf("%w: %s", ErrNotADirectory, target)
	}

	entries, err := afero.ReadDir(w.fs, target)
	if err != nil {
		return fmt.Errorf("failed to read target directory %s: %w", target, err)
	}

	w.log.WithFields(logrus.Fields{
		"target":  target,
		"entries": len(entries),
	}).Info("Cleaning target directory")

	for _, entry := range entries {
		p := filepath.Join(target, entry.Name())
		if err := w.fs.RemoveAll(p); err != nil {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}

	return nil
}

// CopyFiles copies every file to the root of target, keeping its base name, and returns
// the destination paths.
func (w *Workspace) CopyFiles(target string, files ...string) ([]string, error) {
	copied := make([]string, 0, len(files))

	for _, src := range files {
		if src == "" {
			continue
		}

		dst := filepath.Join(target, filepath.Base(src))
		if err := w.copyFile(src, dst); err != nil {
			return copied, err
		}

		observability.RecordExtraFile()
		w.log.WithFields(logrus.Fields{
			"source":      src,
			"destination": dst,
		}).Info("Copied file")

		copied = append(copied, dst)
	}

	return copied, nil
}

func (w *Workspace) copyFile(src, dst string) error {
	in, err := w.fs.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}

	out, err := w.fs.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	return nil
}

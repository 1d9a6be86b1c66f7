package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// Resolver merges defaults, config file values and command line values into a Config.
type Resolver struct {
	log    logrus.FieldLogger
	fs     afero.Fs
	oracle *Oracle
}

// NewResolver creates a resolver checking paths against fs.
func NewResolver(log logrus.FieldLogger, fs afero.Fs) *Resolver {
	return &Resolver{
		log:    log.WithField("component", "config"),
		fs:     fs,
		oracle: NewOracle(fs),
	}
}

// Oracle returns the existence oracle shared by LoadFile and Resolve.
func (r *Resolver) Oracle() *Oracle {
	return r.oracle
}

// ConfigPath resolves a config file path relative to the source directory.
func ConfigPath(sourceDir, file string) string {
	if filepath.IsAbs(file) {
		return filepath.Clean(file)
	}

	return filepath.Join(sourceDir, file)
}

// LoadFile reads the config file designated by the command line values. An explicitly
// given file must exist; the default file is only loaded when present. It returns nil
// values when there is nothing to load.
func (r *Resolver) LoadFile(cli Values) (Values, error) {
	source, ok := cli.Lookup(KeySource)
	if !ok || Normalize(source) == "" {
		// Resolve reports the missing source directory.
		return nil, nil
	}

	name, _ := cli.Lookup(KeyConfig)
	explicit := explicitConfig(cli)
	if !explicit {
		name = DefaultConfigFile
	}

	path := ConfigPath(cleanPath(Normalize(source)), cleanPath(Normalize(name)))
	if !r.oracle.IsFile(path) {
		if explicit {
			return nil, &MissingResourceError{Field: KeyConfig, Path: path, Kind: "file"}
		}

		r.log.WithField("path", path).Debug("No configuration file found, using defaults and command line")

		return nil, nil
	}

	data, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}

	values, err := ParseINI(data, r.log.WithField("path", path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	r.log.WithFields(logrus.Fields{
		"path": path,
		"keys": len(values),
	}).Debug("Loaded configuration file")

	return values, nil
}

// Resolve merges the three sources by precedence (default < file < cli), then
// transforms and validates every field, then runs the cross-field checks. It stops at the
// first violation.
func (r *Resolver) Resolve(defaults, file, cli Values) (*Config, error) {
	cfg := &Config{}

	for _, field := range Fields() {
		fileValues := file
		if field.CLIOnly {
			fileValues = nil
		}

		value, err := r.resolveField(field, merge(field.Key, defaults, fileValues, cli), defaults)
		if err != nil {
			return nil, err
		}

		field.bind(cfg, value)
	}

	if err := validateMIDIOrder(cfg); err != nil {
		return nil, err
	}

	if err := validateMainChannels(cfg); err != nil {
		return nil, err
	}

	if err := r.checkResources(cfg, explicitConfig(cli)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// explicitConfig reports whether the command line names a config file. An empty name
// falls back to the default file, which is optional.
func explicitConfig(cli Values) bool {
	name, ok := cli.Lookup(KeyConfig)
	return ok && Normalize(name) != ""
}

func (r *Resolver) resolveField(field Field, raw RawValue, defaults Values) (interface{}, error) {
	if Normalize(raw.Value) == "" {
		switch field.Empty {
		case EmptyUsesDefault:
			def, ok := defaults.Lookup(field.Key)
			if !ok {
				def = field.Default
			}

			if raw.Set && raw.Source != SourceDefault {
				r.log.WithFields(logrus.Fields{
					"field":   field.Key,
					"source":  raw.Source.String(),
					"default": def,
				}).Warn("Empty value, using default")
			}

			raw = RawValue{Value: def, Source: SourceDefault, Set: true}
		case EmptyIsError:
			return nil, invalid(field.Key, "must not be empty")
		case EmptyAllowed:
		}
	}

	value, err := field.Transform(field.Key, raw.Value)
	if err != nil {
		var cfgErr *ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, cfgErr
		}

		return nil, &ConfigurationError{Field: field.Key, Reason: err.Error(), Err: err}
	}

	for _, check := range field.Validators {
		if err := check(field.Key, value); err != nil {
			return nil, err
		}
	}

	r.log.WithFields(logrus.Fields{
		"field":  field.Key,
		"source": raw.Source.String(),
		"value":  value,
	}).Debug("Resolved configuration field")

	return value, nil
}

// checkResources runs the existence checks, all relative to the source directory.
func (r *Resolver) checkResources(cfg *Config, explicit bool) error {
	if !r.oracle.IsDir(cfg.SourceDir) {
		return &MissingResourceError{Field: KeySource, Path: cfg.SourceDir, Kind: "directory"}
	}

	if err := r.checkTarget(cfg); err != nil {
		return err
	}

	configPath := ConfigPath(cfg.SourceDir, cfg.ConfigFile)
	switch {
	case r.oracle.IsFile(configPath):
		cfg.ConfigFile = configPath
	case explicit:
		return &MissingResourceError{Field: KeyConfig, Path: configPath, Kind: "file"}
	default:
		cfg.ConfigFile = ""
	}

	if cfg.Logo != "" {
		if path := filepath.Join(cfg.SourceDir, cfg.Logo); !r.oracle.IsFile(path) {
			return &MissingResourceError{Field: KeyLogo, Path: path, Kind: "file"}
		}
	}

	for _, extra := range cfg.ExtraFiles {
		if path := filepath.Join(cfg.SourceDir, extra); !r.oracle.IsFile(path) {
			return &MissingResourceError{Field: KeyExtraFiles, Path: path, Kind: "file"}
		}
	}

	return nil
}

func (r *Resolver) checkTarget(cfg *Config) error {
	source, errSource := filepath.Abs(cfg.SourceDir)
	target, errTarget := filepath.Abs(cfg.TargetDir)

	if errSource == nil && errTarget == nil {
		if source == target {
			return invalid(KeyTarget, "must not be the source directory %q", cfg.SourceDir)
		}

		// Preparing the target empties it.
		if rel, err := filepath.Rel(target, source); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return invalid(KeyTarget, "must not contain the source directory %q", cfg.SourceDir)
		}
	}

	if r.oracle.Exists(cfg.TargetDir) {
		if !r.oracle.IsDir(cfg.TargetDir) {
			return invalid(KeyTarget, "%q exists and is not a directory", cfg.TargetDir)
		}

		return nil
	}

	parent := filepath.Dir(cfg.TargetDir)
	if errTarget == nil {
		parent = filepath.Dir(target)
	}

	if !r.oracle.IsDir(parent) {
		return &MissingResourceError{Field: KeyTarget, Path: parent, Kind: "directory"}
	}

	return nil
}

package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
)

// Section is the INI section holding the kit configuration.
const Section = "drumgizmo_kit_generator"

// ParseINI reads kit values from INI content. Keys may use dashes or underscores;
// unknown keys and keys reserved to the command line are ignored with a warning.
func ParseINI(data []byte, log logrus.FieldLogger) (Values, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFile, err)
	}

	values := Values{}

	section, err := file.GetSection(Section)
	if err != nil {
		log.WithField("section", Section).Warn("Section not found in configuration file")
		return values, nil
	}

	for _, k := range section.Keys() {
		key := KeyFromFlag(k.Name())

		field, ok := Lookup(key)
		if !ok {
			log.WithField("key", k.Name()).Warn("Ignoring unknown configuration key")
			continue
		}

		if field.CLIOnly {
			log.WithField("key", k.Name()).Warn("Ignoring configuration key that can only be set on the command line")
			continue
		}

		values[key] = k.Value()
	}

	return values, nil
}

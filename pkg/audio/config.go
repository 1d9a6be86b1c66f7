package audio

import "fmt"

// Config contains conversion settings
type Config struct {
	Jobs       int    `yaml:"jobs" default:"4"`
	SoxBinary  string `yaml:"soxBinary" default:"sox"`
	SoxiBinary string `yaml:"soxiBinary" default:"soxi"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Jobs <= 0 {
		return fmt.Errorf("%w: jobs must be positive", ErrInvalidOptions)
	}

	if c.SoxBinary == "" || c.SoxiBinary == "" {
		return fmt.Errorf("%w: sox binaries must not be empty", ErrInvalidOptions)
	}

	return nil
}

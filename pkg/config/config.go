// Package config provides the configuration system for Gagatek conversions.
// A single Config structure describes one conversion: the source file, the
// column separator, and logging preferences. Configurations can be built
// programmatically or loaded from a YAML file.
package config

import (
	"github.com/gagatek/gagatek/pkg/errors"
)

// DefaultSeparator is the column separator used when none is configured.
const DefaultSeparator = ";"

// Config describes a single conversion run.
type Config struct {
	// SourcePath is the delimited text file to convert
	SourcePath string `yaml:"source_path" json:"source_path"`

	// Separator splits a line into fields; no quoting or escaping is applied
	Separator string `yaml:"separator" json:"separator"`

	// Logging controls the structured logger
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level    string `yaml:"level" json:"level"`
	Encoding string `yaml:"encoding" json:"encoding"` // json or console
}

// NewConfig returns a Config for the given source path with defaults applied.
func NewConfig(sourcePath string) *Config {
	return &Config{
		SourcePath: sourcePath,
		Separator:  DefaultSeparator,
		Logging: LoggingConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.SourcePath == "" {
		return errors.New(errors.ErrorTypeConfig, "source path is required")
	}
	if c.Separator == "" {
		return errors.New(errors.ErrorTypeConfig, "separator must not be empty")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Encoding == "" {
		c.Logging.Encoding = "console"
	}
	return nil
}

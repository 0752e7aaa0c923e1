package main

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config carries the CLI defaults. Values from a config file sit under the
// flags: a flag given a non-zero, non-empty value wins.
type Config struct {
	// SampleRecords bounds detection to the first N records. 0 leaves the
	// library default of 100 records in place.
	SampleRecords int `yaml:"sampleRecords"`

	// SampleBytes bounds detection to the first N bytes. 0 disables.
	SampleBytes int `yaml:"sampleBytes"`

	// DateFormat is "mdy" or "dmy".
	DateFormat string `yaml:"dateFormat"`

	// Delimiter forces the delimiter when non-empty (single character, or
	// "\t" for tab).
	Delimiter string `yaml:"delimiter"`

	// Quote forces the quote when non-empty: a single character or "none".
	Quote string `yaml:"quote"`

	// Format selects the output renderer: "text" or "json".
	Format string `yaml:"format"`
}

// DefaultConfig constructs a configuration with default values.
func DefaultConfig() Config {
	return Config{
		SampleRecords: 100,
		DateFormat:    "mdy",
		Format:        "text",
	}
}

// Apply overrides the base config values with values from another
// configuration.
func (c *Config) Apply(overlay Config) {
	if overlay.SampleRecords > 0 {
		c.SampleRecords = overlay.SampleRecords
	}
	if overlay.SampleBytes > 0 {
		c.SampleBytes = overlay.SampleBytes
	}
	if overlay.DateFormat != "" {
		c.DateFormat = overlay.DateFormat
	}
	if overlay.Delimiter != "" {
		c.Delimiter = overlay.Delimiter
	}
	if overlay.Quote != "" {
		c.Quote = overlay.Quote
	}
	if overlay.Format != "" {
		c.Format = overlay.Format
	}
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

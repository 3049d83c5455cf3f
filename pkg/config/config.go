// Package config provides configuration loading for the vidsz CLI.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the CLI defaults that can be set from a YAML file and
// overridden per invocation by flags.
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Reading
	BatchSize int `yaml:"batch_size"`

	// Output
	Output OutputConfig `yaml:"output"`
}

// OutputConfig holds writer overrides. Zero values inherit from the
// source stream.
type OutputConfig struct {
	Ext    string  `yaml:"ext"`
	FPS    float64 `yaml:"fps"`
	Width  int     `yaml:"width"`
	Height int     `yaml:"height"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		BatchSize: 1,
	}
}

// LoadFromFile loads configuration from a YAML file on top of the
// defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

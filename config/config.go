// Package config loads interpreter settings from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fortio.org/log"
	"gopkg.in/yaml.v3"
)

const DefaultFile = ".lx.yaml"

type Config struct {
	// Prompt is shown by the REPL before each line.
	Prompt string `yaml:"prompt"`
	// HistoryFile keeps REPL history between runs. A leading ~ expands to
	// the home directory. Empty disables history.
	HistoryFile string `yaml:"history_file"`
	// LogLevel is a fortio log level name such as "info" or "verbose".
	LogLevel string `yaml:"log_level"`
	// MaxCallDepth caps nested calls, 0 means unbounded.
	MaxCallDepth int `yaml:"max_call_depth"`
}

func Default() Config {
	return Config{
		Prompt:      "> ",
		HistoryFile: "~/.lx_history",
		LogLevel:    "info",
	}
}

// DefaultPath is ~/.lx.yaml, or "" when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, DefaultFile)
}

// Load reads path over the defaults. A missing file is not an error when
// optional is set.
func Load(path string, optional bool) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if optional && errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return Config{}, fmt.Errorf("config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, got %d", c.MaxCallDepth)
	}

	if _, err := log.ValidateLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	return nil
}

// HistoryPath returns HistoryFile with ~ expanded.
func (c Config) HistoryPath() string {
	path := c.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}

		path = filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}

	return path
}

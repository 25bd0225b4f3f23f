// Package config loads the optional botprobe config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"botprobe/internal/control"
	"botprobe/internal/report"
)

// Config holds the tool's settings. Everything has a working default; the
// file exists so operators can point at a non-standard service or widen the
// event filter without rebuilding.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Tail       int
	EventTypes []string
}

// fileConfig is the on-disk shape. Durations are written as strings
// ("10s"), which yaml.v3 will not decode into time.Duration on its own.
type fileConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Timeout    string   `yaml:"timeout"`
	Tail       *int     `yaml:"tail"`
	EventTypes []string `yaml:"event_types"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:    control.DefaultBaseURL,
		Timeout:    control.DefaultTimeout,
		Tail:       report.DefaultTail,
		EventTypes: append([]string(nil), report.DefaultTypes...),
	}
}

// DefaultPath is ~/.botprobe/config.yaml, or "" if the home directory is
// unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".botprobe", "config.yaml")
}

// Load reads configuration from path. Empty path means DefaultPath. A
// missing file yields the defaults; an unreadable or malformed file is an
// error. The file overwrites only the fields it names.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Default()
	if fc.BaseURL != "" {
		cfg.BaseURL = fc.BaseURL
	}
	if fc.Timeout != "" {
		d, err := time.ParseDuration(fc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", fc.Timeout, err)
		}
		cfg.Timeout = d
	}
	if fc.Tail != nil {
		cfg.Tail = *fc.Tail
	}
	if fc.EventTypes != nil {
		cfg.EventTypes = fc.EventTypes
	}
	return cfg, nil
}

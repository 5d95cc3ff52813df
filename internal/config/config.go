// Package config holds the report run settings, layered from defaults, an
// optional YAML file, and REPORT_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all run settings.
type Config struct {
	// InputPath points at the Storm Events dataset (.csv, .csv.gz, .csv.bz2).
	InputPath string `koanf:"input_path"`

	// OutputDir receives report.md and the chart SVGs.
	OutputDir string `koanf:"output_dir"`

	// TopN is the number of leading categories per ranked table.
	TopN int `koanf:"top_n"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: json or text.
	LogFormat string `koanf:"log_format"`

	// ChartWidth and ChartHeight size the rendered SVGs in pixels.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`
}

func defaults() *Config {
	return &Config{
		OutputDir:   "report",
		TopN:        6,
		LogLevel:    "info",
		LogFormat:   "json",
		ChartWidth:  900,
		ChartHeight: 500,
	}
}

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults
//  2. file (YAML) if REPORT_CONFIG is set
//  3. env (prefix REPORT_), e.g. REPORT_INPUT_PATH, REPORT_TOP_N
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv("REPORT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// REPORT_INPUT_PATH -> input_path; underscores preserved to match the
	// koanf tags on the struct.
	envProvider := env.Provider("REPORT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "report_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *defaults()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks invariants that hold regardless of how the Config was
// built.
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input_path is required")
	}
	if c.OutputDir == "" {
		return errors.New("output_dir must not be empty")
	}
	if c.TopN < 1 {
		return errors.New("top_n must be at least 1")
	}
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log_format must be json or text, got %q", c.LogFormat)
	}
	if c.ChartWidth < 100 || c.ChartHeight < 100 {
		return errors.New("chart dimensions must be at least 100px")
	}
	return nil
}

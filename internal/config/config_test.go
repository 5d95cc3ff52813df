package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults with required input", func(t *testing.T) {
		t.Setenv("REPORT_INPUT_PATH", "/data/StormData.csv.bz2")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/data/StormData.csv.bz2", cfg.InputPath)
		assert.Equal(t, "report", cfg.OutputDir)
		assert.Equal(t, 6, cfg.TopN)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 900, cfg.ChartWidth)
		assert.Equal(t, 500, cfg.ChartHeight)
	})

	t.Run("missing input path", func(t *testing.T) {
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input_path is required")
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("REPORT_INPUT_PATH", "storm.csv")
		t.Setenv("REPORT_TOP_N", "3")
		t.Setenv("REPORT_LOG_FORMAT", "text")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 3, cfg.TopN)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("yaml file layered under env", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.yaml")
		yaml := "input_path: from-file.csv\noutput_dir: out\ntop_n: 10\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

		t.Setenv("REPORT_CONFIG", path)
		t.Setenv("REPORT_TOP_N", "4")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "from-file.csv", cfg.InputPath)
		assert.Equal(t, "out", cfg.OutputDir)
		assert.Equal(t, 4, cfg.TopN, "env wins over file")
	})

	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("REPORT_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
		t.Setenv("REPORT_INPUT_PATH", "storm.csv")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "load config file")
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := defaults()
		c.InputPath = "storm.csv"
		return c
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	tests := []struct {
		name    string
		mutate  func(*Config)
		message string
	}{
		{"empty output dir", func(c *Config) { c.OutputDir = "" }, "output_dir"},
		{"zero top n", func(c *Config) { c.TopN = 0 }, "top_n"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"tiny chart", func(c *Config) { c.ChartWidth = 10 }, "chart dimensions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

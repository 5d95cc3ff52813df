// Package observability provides the run's structured logger and metrics.
package observability

import (
	"log/slog"
	"os"

	"github.com/couchcryptid/storm-impact-report/internal/config"
)

// NewLogger builds the process logger from config: JSON or text handler on
// stderr, leveled per LogLevel (unknown levels fall back to info).
func NewLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// Package observability provides the structured logger and the metrics
// instruments shared across the service.
package observability

import (
	"log/slog"
	"os"
	"strings"
)

type LogConfig struct {
	Level  string
	Format string
}

// InitLogger builds a slog.Logger writing to stderr in the configured
// format. Unknown levels fall back to info.
func InitLogger(cfg LogConfig) *slog.Logger {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
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
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// Package logger configures the process logger from the environment.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup creates a logger writing to stderr, configured by LOG_LEVEL
// (debug, info, warn, error) and LOG_FORMAT (json, text), and installs it
// as the default.
func Setup() *slog.Logger {
	l := New(os.Stderr, os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	slog.SetDefault(l)
	return l
}

// New creates a logger. Unknown levels default to info, unknown formats
// to text.
func New(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

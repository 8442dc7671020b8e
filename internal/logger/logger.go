// Package logger configures the process-wide slog logger. Development gets a
// colored single-line console handler, everything else gets JSON.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds a logger for the given environment and installs it as the
// slog default.
func Setup(env, level string) *slog.Logger {
	var handler slog.Handler
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(env, "development") {
		handler = NewConsoleHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewConsoleHandler returns a human-oriented handler that writes one colored
// line per record.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) slog.Handler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}
	return &consoleHandler{opts: *opts, out: &syncWriter{w: w}}
}

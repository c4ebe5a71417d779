// Package logger configures the structured logger used by the command line
// tools. Output goes to the given writer (stderr in practice) so stdout stays
// free for user-facing messages.
package logger

import (
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// New returns a text logger at Info level, or Debug level when verbose
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// WithRun tags every record of logger with a fresh run_id
func WithRun(logger *slog.Logger) (*slog.Logger, string) {
	id := uuid.NewString()
	return logger.With("run_id", id), id
}

// Discard returns a logger that drops every record
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

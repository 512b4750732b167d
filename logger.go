package testartifacts

import (
	"io"
	"log/slog"
)

// Logger defines the interface for context logging.
// Arguments after the message are key-value pairs:
//
//	logger.Info("Service registered", "name", "environment")
//
// *slog.Logger satisfies it directly.
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Warn(msg string, args ...any)
	Debug(msg string, args ...any)
}

// NewTextLogger returns a slog text logger writing to w at the given level.
func NewTextLogger(w io.Writer, level slog.Level) Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// nopLogger discards everything; used when a context is built without a logger.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}

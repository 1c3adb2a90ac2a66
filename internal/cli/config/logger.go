package config

import (
	"context"
	"log/slog"
	"os"
)

// loggerKey stores the logger in a command context.
type loggerKey struct{}

// LoggerKey returns the context key used for storing the logger. This lets
// the commands package retrieve the logger from context without creating an
// import cycle with the cli package.
func LoggerKey() interface{} {
	return loggerKey{}
}

// NewLogger builds the process logger. Verbose enables debug level.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.New(slog.DiscardHandler)
}

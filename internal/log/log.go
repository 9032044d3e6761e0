// Package log provides structured logging for go-fitcoach.
// It wraps slog with sensible defaults for production use.
package log

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	logger  *slog.Logger
	leveler = new(slog.LevelVar)
	once    sync.Once
)

// Init initializes the global logger at the given level.
// Valid levels: "debug", "info", "warn", "error" (case-insensitive);
// anything else falls back to info.
func Init(level string) {
	once.Do(func() {
		leveler.Set(parseLevel(level))
		opts := &slog.HandlerOptions{Level: leveler}

		// JSON in production so log collectors can parse fields,
		// human-readable text everywhere else.
		var h slog.Handler
		if os.Getenv("GO_ENV") == "production" {
			h = slog.NewJSONHandler(os.Stdout, opts)
		} else {
			h = slog.NewTextHandler(os.Stdout, opts)
		}

		logger = slog.New(h)
		slog.SetDefault(logger)
	})
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

// SetLevel changes the log level of the running logger. Handy for
// flipping a live server into debug without a restart.
func SetLevel(level string) {
	leveler.Set(parseLevel(level))
}

// L returns the global logger, initializing it at info if Init was
// never called.
func L() *slog.Logger {
	if logger == nil {
		Init("info")
	}
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) {
	L().Debug(msg, args...)
}

// Info logs at info level.
func Info(msg string, args ...any) {
	L().Info(msg, args...)
}

// Warn logs at warn level.
func Warn(msg string, args ...any) {
	L().Warn(msg, args...)
}

// Error logs at error level.
func Error(msg string, args ...any) {
	L().Error(msg, args...)
}

// With returns a logger carrying the given attributes.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}

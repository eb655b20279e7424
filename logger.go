package prealloc

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with prealloc-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTag adds an allocation tag field to the logger.
func (l *Logger) WithTag(tag Tag) *Logger {
	return &Logger{
		Logger: l.Logger.With("tag", string(tag)),
	}
}

// LogGrow logs a relocation into a larger overflow region.
// spill is true when the elements left the inline buffer.
func (l *Logger) LogGrow(tag Tag, fromCap, toCap, size int, spill bool, err error) {
	if err != nil {
		l.Warn("overflow allocation refused",
			"tag", string(tag),
			"from_cap", fromCap,
			"to_cap", toCap,
			"size", size,
			"error", err,
		)
		return
	}
	if spill {
		l.Debug("spilled inline buffer",
			"tag", string(tag),
			"to_cap", toCap,
			"size", size,
		)
		return
	}
	l.Debug("grew overflow region",
		"tag", string(tag),
		"from_cap", fromCap,
		"to_cap", toCap,
		"size", size,
	)
}

// LogShrink logs a shrink-to-fit.
func (l *Logger) LogShrink(tag Tag, fromCap, toCap int, err error) {
	if err != nil {
		l.Warn("shrink refused",
			"tag", string(tag),
			"from_cap", fromCap,
			"to_cap", toCap,
			"error", err,
		)
		return
	}
	l.Debug("shrank overflow region",
		"tag", string(tag),
		"from_cap", fromCap,
		"to_cap", toCap,
	)
}

// LogFree logs the release of an overflow region on Free.
func (l *Logger) LogFree(tag Tag, capacity int, bytes int64) {
	l.Debug("released overflow region",
		"tag", string(tag),
		"cap", capacity,
		"bytes", bytes,
	)
}

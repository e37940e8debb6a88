package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// default logger instance
	defaultLogger *slog.Logger
)

// initializes the logger based on environment
func init() {
	Configure(os.Getenv("QUILL_ENV"), "", os.Stderr)
}

// rebuilds the default logger. production gets JSON output, everything else
// gets human-readable text. an empty level picks the environment default.
func Configure(env, level string, w io.Writer) {
	if w == nil {
		w = os.Stderr
	}

	var handler slog.Handler

	if env == "production" {
		opts := &slog.HandlerOptions{
			Level: parseLevel(level, slog.LevelInfo),
		}
		handler = slog.NewJSONHandler(w, opts)
	} else {
		opts := &slog.HandlerOptions{
			Level: parseLevel(level, slog.LevelDebug),
		}
		handler = slog.NewTextHandler(w, opts)
	}

	defaultLogger = slog.New(handler)
}

func parseLevel(level string, fallback slog.Level) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

// creates a logger with additional context fields
func With(args ...any) *slog.Logger {
	return defaultLogger.With(args...)
}

// creates a logger with context
func FromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return defaultLogger
	}

	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}

	return defaultLogger
}

// adds logger to context
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

type loggerKey struct{}

// logs an info message
func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

// logs a warning message
func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

// logs an error message
func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// logs an error with context
func ErrorErr(err error, msg string, args ...any) {
	args = append(args, "error", err)
	defaultLogger.Error(msg, args...)
}

package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// NewDefaultLogger creates a new logger with color support for errors and warnings
// This is a convenience function for common use cases
func NewDefaultLogger(level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewLogger creates a new logger with color support using a custom writer
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(NewColorHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps a configuration string to an slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Package logging installs the process-wide slog logger. The TUI owns
// the terminal, so logs go to a file in the data directory rather than
// stderr.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Level bounds beyond slog's named constants: LevelTrace sits below
// Debug, LevelOff above everything so no record passes.
const (
	LevelTrace = slog.LevelDebug - 4
	LevelOff   = slog.LevelError + 4
)

// Init creates dataDir if needed, opens termpulse-debug.log inside it,
// and installs a file-backed text handler as the default logger. The
// returned closer flushes the log file; call it on shutdown.
func Init(dataDir, level string) (func() error, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: create %s: %w", dataDir, err)
	}

	path := filepath.Join(dataDir, "termpulse-debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open %s: %w", path, err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level:     ParseLevel(level),
		AddSource: true,
	})
	slog.SetDefault(slog.New(handler))

	return f.Close, nil
}

// ParseLevel maps a verbosity name to a slog level. Recognized values
// are off, error, warn, info, debug, and trace; anything else,
// including the empty string, defaults to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "off":
		return LevelOff
	case "error":
		return slog.LevelError
	case "warn":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "trace":
		return LevelTrace
	default:
		return slog.LevelInfo
	}
}

// Package logging provides a shared, structured logger for vscroll.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so the engine, the terminal surface and the app all
// share the same handler and level. The level is read once from the
// VSCROLL_LOG_LEVEL environment variable (debug, info, warn, error) and
// defaults to INFO.
//
// Usage:
//
//	log := logging.New("scroller")
//	log.Debug("recycled", "direction", dir, "index", idx)
//
// Output goes to stderr so it does not interfere with the terminal UI on
// stdout. Redirect it when running the TUI: `vscroll 2>vscroll.log`.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	initLogger sync.Once

	// baseLogger is shared by all components. Component loggers are derived
	// from it via With().
	baseLogger *slog.Logger
)

// New returns a structured logger scoped to the given component name.
//
// The component name is attached as a "component" attribute to every entry.
// An empty component returns the base logger.
func New(component string) *slog.Logger {
	initLogger.Do(func() {
		baseLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: parseLevel(os.Getenv("VSCROLL_LOG_LEVEL")),
		}))
	})
	if component == "" {
		return baseLogger
	}
	return baseLogger.With("component", component)
}

// parseLevel converts a human-readable level to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

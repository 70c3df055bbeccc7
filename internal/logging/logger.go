// Package logging configures the charmbracelet loggers used across
// kmpcheck. Components take a *log.Logger as a constructor argument
// rather than reaching for a global; Default exists for the thin layer
// of code (CLI wiring, nil-logger fallbacks) that has nothing injected.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // fallback logger for code without an injected one
var (
	defaultLogger     *log.Logger
	defaultLoggerOnce sync.Once
)

// New creates a logger writing to stderr at the given level.
func New(level string) *log.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing to w at the given level.
// Levels are "debug", "info", "warn" and "error"; anything else falls
// back to info. Timestamps and caller reporting stay off so analyzer
// output is stable across runs.
func NewWithWriter(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: false,
		ReportCaller:    false,
	})
	logger.SetLevel(parseLevel(level))
	return logger
}

// ForAnalyzer derives a logger for one analyzer, tagging every record
// with the analyzer's name so interleaved runs stay attributable.
func ForAnalyzer(parent *log.Logger, name string) *log.Logger {
	if parent == nil {
		parent = Default()
	}
	return parent.With(FieldAnalyzer, name)
}

// parseLevel maps a level name to a charmbracelet level, defaulting
// to info for anything unrecognized.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the package-level fallback logger.
func Default() *log.Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New("info")
	})
	return defaultLogger
}

// SetLevel updates the level of the fallback logger.
func SetLevel(level string) {
	Default().SetLevel(parseLevel(level))
}

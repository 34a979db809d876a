// Package logger provides thin wrappers around charmbracelet/log so every
// package logs with a consistent prefix and the globally selected level.
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New creates a prefixed logger writing to stderr, respecting the global level.
func New(prefix string) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportCaller:    false,
		ReportTimestamp: false,
		Formatter:       log.TextFormatter,
		Level:           log.GetLevel(),
	})
}

// NewWithConfig creates a logger with explicit options, for callers that need
// timestamps or caller reporting (server mode mostly).
func NewWithConfig(prefix string, level log.Level, caller, timestamp bool, fmt log.Formatter) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		Level:           level,
		ReportCaller:    caller,
		ReportTimestamp: timestamp,
		Formatter:       fmt,
	})
}

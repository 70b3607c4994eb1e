// Package logger provides verbose logging for the korpus CLI.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to help users follow the ingestion and search
// pipelines.
package logger

import (
	"io"
	"os"
	"sync"

	charmlog "github.com/charmbracelet/log"
)

var (
	mu sync.RWMutex
	l  = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: false,
		Level:           charmlog.WarnLevel,
	})
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	if v {
		l.SetLevel(charmlog.DebugLevel)
	} else {
		l.SetLevel(charmlog.WarnLevel)
	}
}

// SetOutput sets the output writer. Defaults to os.Stderr.
// Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	l.SetOutput(w)
}

// Debug prints a debug message if verbose mode is enabled.
func Debug(format string, args ...any) {
	l.Debugf(format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	l.Infof(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	l.Warnf(format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	l.Errorf(format, args...)
}

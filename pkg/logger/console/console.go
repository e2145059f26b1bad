// Package console provides the stderr logging backend used by the worker,
// ingest and report binaries.
package console

import (
	"os"

	"github.com/charmbracelet/log"
)

// ConsoleLogger writes structured log lines to stderr through
// charmbracelet/log.
type ConsoleLogger struct {
	l *log.Logger
}

// ConsoleLoggerParams contains configuration for creating a ConsoleLogger.
// Prefix names the binary so lines from different processes sharing a
// terminal stay distinguishable.
type ConsoleLoggerParams struct {
	Debug  bool
	Prefix string
}

// NewConsoleLogger creates a console backend. Debug lowers the level and
// turns on caller reporting.
func NewConsoleLogger(params ConsoleLoggerParams) *ConsoleLogger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          params.Prefix,
		Level:           log.InfoLevel,
	}
	if params.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
	}
	return &ConsoleLogger{l: log.NewWithOptions(os.Stderr, opts)}
}

func (c *ConsoleLogger) Log(message string, keyvals ...any)   { c.l.Print(message, keyvals...) }
func (c *ConsoleLogger) Debug(message string, keyvals ...any) { c.l.Debug(message, keyvals...) }
func (c *ConsoleLogger) Info(message string, keyvals ...any)  { c.l.Info(message, keyvals...) }
func (c *ConsoleLogger) Warn(message string, keyvals ...any)  { c.l.Warn(message, keyvals...) }
func (c *ConsoleLogger) Error(message string, keyvals ...any) { c.l.Error(message, keyvals...) }

// Fatal logs and exits with a non-zero status.
func (c *ConsoleLogger) Fatal(message string, keyvals ...any) { c.l.Fatal(message, keyvals...) }

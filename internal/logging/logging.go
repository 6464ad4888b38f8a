// Package logging builds the console loggers used by the CLI and page objects.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hr2-io/hr2-e2e/internal/config"
)

// LevelEnv overrides the configured level when set.
const LevelEnv = "HR2_LOG_LEVEL"

// Options configures a logger.
type Options struct {
	// Level is the minimum level (debug, info, warn, error).
	Level string
	// Output defaults to os.Stderr.
	Output io.Writer
	// Prefix is the component name shown before each message.
	Prefix          string
	ReportTimestamp bool
	ReportCaller    bool
}

// ParseLevel converts a level name to a log.Level. Unknown names map to info.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func New(opts Options) *log.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	return log.NewWithOptions(out, log.Options{
		Level:           ParseLevel(opts.Level),
		Prefix:          opts.Prefix,
		TimeFormat:      time.TimeOnly,
		ReportTimestamp: opts.ReportTimestamp,
		ReportCaller:    opts.ReportCaller,
	})
}

// FromConfig builds the suite logger, honouring HR2_LOG_LEVEL.
func FromConfig(cfg config.LoggingConfig, prefix string) *log.Logger {
	level := cfg.Level
	if env := os.Getenv(LevelEnv); env != "" {
		level = env
	}
	return New(Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: cfg.ReportTimestamp,
	})
}

// Discard returns a logger that drops everything; used by unit tests.
func Discard() *log.Logger {
	return New(Options{Output: io.Discard, Level: "error"})
}

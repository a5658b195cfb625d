// Package logging provides structured logging configuration using zerolog.
package logging

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogLevel represents the logging level.
type LogLevel string

const (
	// LevelDebug logs debug messages and above.
	LevelDebug LogLevel = "debug"

	// LevelInfo logs info messages and above.
	LevelInfo LogLevel = "info"

	// LevelWarn logs warning messages and above.
	LevelWarn LogLevel = "warn"

	// LevelError logs error messages only.
	LevelError LogLevel = "error"
)

// Component names attached to loggers via NewLogger.
const (
	ComponentProxy    = "proxy"
	ComponentAccess   = "access"
	ComponentEviction = "eviction"
	ComponentBackend  = "backend"
	ComponentDriver   = "driver"
)

// Config holds logger configuration.
type Config struct {
	// Level is the minimum log level to output.
	Level LogLevel

	// Pretty enables human-readable console output (default: false for JSON).
	Pretty bool

	// Output is the writer to output logs to (default: os.Stderr).
	Output io.Writer
}

// DefaultConfig returns a default logger configuration.
func DefaultConfig() Config {
	return Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: os.Stderr,
	}
}

// ConfigFromEnv builds a Config from LOG_LEVEL and LOG_PRETTY, starting
// from DefaultConfig. getenv is usually os.Getenv.
func ConfigFromEnv(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if level := getenv("LOG_LEVEL"); level != "" {
		cfg.Level = LogLevel(strings.ToLower(level))
	}

	if pretty := getenv("LOG_PRETTY"); pretty != "" {
		if v, err := strconv.ParseBool(pretty); err == nil {
			cfg.Pretty = v
		}
	}

	return cfg
}

// Setup configures the global zerolog logger.
func Setup(cfg Config) zerolog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}

	// Set global log level
	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	// Durations are reported in milliseconds
	zerolog.DurationFieldUnit = time.Millisecond

	// Configure output
	var output io.Writer = cfg.Output
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.TimeOnly}
	}

	// Create logger with timestamp
	logger := zerolog.New(output).With().Timestamp().Logger()

	// Set as global logger
	log.Logger = logger

	return logger
}

// parseLevel converts LogLevel to zerolog.Level.
func parseLevel(level LogLevel) zerolog.Level {
	switch strings.ToLower(string(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger with the given component name.
func NewLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// Log Level Guidelines:
//
// Debug: Detailed information for debugging
//   - Cache operations (hit, cached response, TTL)
//   - In-flight backend requests joined by concurrent callers
//   - Eviction sweeps that removed entries
//   - Scheduler start/stop
//
// Info: Normal operation events
//   - Backend invocations (cache misses)
//   - Demo completion
//   - Server startup/shutdown
//
// Warn: Warning conditions that don't prevent operation
//   - Access denied (credential mismatch)
//   - Origin store errors (fallback to direct computation)
//   - Interrupted demo runs
//
// Error: Error conditions requiring attention
//   - Eviction sweep panics (schedule continues)
//   - Configuration errors
//
// Context Fields:
//   - component: proxy, access, eviction, backend, driver
//   - key: request key
//   - ttl: cache lifetime
//   - interval: sweep interval
//   - removed: entries removed by a sweep
//   - duration: elapsed time

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != LevelInfo {
		t.Errorf("Expected default level to be Info, got %s", cfg.Level)
	}

	if cfg.Pretty != false {
		t.Error("Expected default pretty to be false")
	}
}

func TestSetup(t *testing.T) {
	tests := []struct {
		name     string
		pretty   bool
		contains string
	}{
		{
			name:     "json output",
			pretty:   false,
			contains: `"message":"proxy started"`,
		},
		{
			name:     "console output",
			pretty:   true,
			contains: "proxy started",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := Setup(Config{
				Level:  LevelInfo,
				Pretty: tt.pretty,
				Output: buf,
			})

			logger.Info().Msg("proxy started")

			output := buf.String()
			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got %q", tt.contains, output)
			}
			if tt.pretty && strings.Contains(output, `"message"`) {
				t.Errorf("Console output should not be JSON, got %q", output)
			}
		})
	}
}

func TestSetup_NilOutput(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Setup with nil output panicked: %v", r)
		}
	}()
	Setup(Config{Level: LevelError})
	Setup(DefaultConfig())
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    LogLevel
		expected zerolog.Level
	}{
		{LevelDebug, zerolog.DebugLevel},
		{LevelInfo, zerolog.InfoLevel},
		{LevelWarn, zerolog.WarnLevel},
		{LevelError, zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel}, // Should default to Info
	}

	for _, tt := range tests {
		t.Run(string(tt.input), func(t *testing.T) {
			result := parseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelInfo,
		Pretty: false,
		Output: buf,
	})

	logger := NewLogger(ComponentProxy)
	logger.Info().Msg("test message")

	output := buf.String()
	if !strings.Contains(output, `"component":"proxy"`) {
		t.Errorf("Expected output to contain proxy component, got %q", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected output to contain 'test message', got %q", output)
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	Setup(Config{
		Level:  LevelWarn,
		Pretty: false,
		Output: buf,
	})

	logger := NewLogger("test")

	// These should NOT appear (below warn level)
	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")

	// These SHOULD appear (warn level and above)
	logger.Warn().Msg("warn message")
	logger.Error().Msg("error message")

	output := buf.String()

	if strings.Contains(output, "debug message") {
		t.Error("Debug message should be filtered out at Warn level")
	}
	if strings.Contains(output, "info message") {
		t.Error("Info message should be filtered out at Warn level")
	}
	if !strings.Contains(output, "warn message") {
		t.Error("Warn message should be included at Warn level")
	}
	if !strings.Contains(output, "error message") {
		t.Error("Error message should be included at Warn level")
	}
}

func TestConfigFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantLevel  LogLevel
		wantPretty bool
	}{
		{
			name:       "defaults",
			env:        map[string]string{},
			wantLevel:  LevelInfo,
			wantPretty: false,
		},
		{
			name:       "debug pretty",
			env:        map[string]string{"LOG_LEVEL": "DEBUG", "LOG_PRETTY": "true"},
			wantLevel:  LevelDebug,
			wantPretty: true,
		},
		{
			name:       "invalid pretty ignored",
			env:        map[string]string{"LOG_LEVEL": "warn", "LOG_PRETTY": "maybe"},
			wantLevel:  LevelWarn,
			wantPretty: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ConfigFromEnv(func(key string) string { return tt.env[key] })

			if cfg.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", cfg.Level, tt.wantLevel)
			}
			if cfg.Pretty != tt.wantPretty {
				t.Errorf("Pretty = %v, want %v", cfg.Pretty, tt.wantPretty)
			}
			if cfg.Output == nil {
				t.Error("Output should default to stderr")
			}
		})
	}
}

package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"Info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"xyzzy", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("level "+tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

func TestInitLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "debug", Format: "json"})
		require.NotNil(t, logger)
		logger.Info("test message", "key", "value")
	})

	t.Run("default format is text", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "warn"})
		require.NotNil(t, logger)
		logger.Warn("warning message")
	})

	t.Run("sets default logger", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "info", Format: "json"})
		require.NotNil(t, slog.Default())
		assert.Equal(t, logger.Handler(), slog.Default().Handler())
	})

	t.Run("service attribute", func(t *testing.T) {
		logger := InitLogger(LogConfig{Level: "info", Format: "json", Service: "financing-service"})
		require.NotNil(t, logger)
		logger.Info("tagged message")
	})
}

package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("REPORT_ADDR", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("READ_POOL_SIZE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:31200", cfg.ReportAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 4, cfg.ReadPoolSize)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("REPORT_ADDR", "0.0.0.0:8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("READ_POOL_SIZE", "8")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.ReportAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8, cfg.ReadPoolSize)
}

func TestLoad_InvalidPoolSize(t *testing.T) {
	t.Setenv("READ_POOL_SIZE", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{ReportAddr: "127.0.0.1:31200", LogLevel: "info", ReadPoolSize: 4}
	assert.NoError(t, cfg.Validate())

	cfg.ReadPoolSize = 0
	assert.Error(t, cfg.Validate())

	cfg = &Config{LogLevel: "info", ReadPoolSize: 1}
	assert.Error(t, cfg.Validate())
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		assert.Equal(t, tt.want, cfg.SlogLevel())
	}
}

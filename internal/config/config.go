package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
)

// Config holds all configuration for the report server
type Config struct {
	// Address the analytics HTTP server listens on
	ReportAddr string

	// Logging
	LogLevel string

	// Size of the read-only connection pool for analytic queries
	ReadPoolSize int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// REPORT_ADDR (default: 127.0.0.1:31200)
	cfg.ReportAddr = os.Getenv("REPORT_ADDR")
	if cfg.ReportAddr == "" {
		cfg.ReportAddr = "127.0.0.1:31200"
	}

	// LOG_LEVEL (default: info)
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	// READ_POOL_SIZE (default: 4)
	poolSize := os.Getenv("READ_POOL_SIZE")
	if poolSize == "" {
		cfg.ReadPoolSize = 4
	} else {
		n, err := strconv.Atoi(poolSize)
		if err != nil {
			return nil, fmt.Errorf("READ_POOL_SIZE must be a valid integer: %w", err)
		}
		cfg.ReadPoolSize = n
	}

	return cfg, nil
}

// LoadWithValidation loads and validates configuration, failing fast on errors
func LoadWithValidation() (*Config, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.ReportAddr == "" {
		return fmt.Errorf("ReportAddr cannot be empty")
	}
	if c.ReadPoolSize < 1 {
		return fmt.Errorf("ReadPoolSize must be at least 1")
	}
	return nil
}

// SlogLevel maps the configured log level to a slog.Level
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogConfig logs configuration values
func (c *Config) LogConfig(logger *slog.Logger) {
	logger.Info("configuration loaded",
		slog.String("report_addr", c.ReportAddr),
		slog.String("log_level", c.LogLevel),
		slog.Int("read_pool_size", c.ReadPoolSize),
	)
}

// pkg/config/config.go
package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	// File paths
	InputPath       string
	OutputCleanPath string
	DBPath          string

	// Load settings
	BatchSize  int
	MaxRetries int
	RetryDelay time.Duration

	// Inspection API
	HTTPAddr string

	// Logging
	LogLevel  string
	LogFormat string
}

// LoadConfig loads configuration from environment variables.
// A .env file in the working directory is honored when present.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; the process environment still applies
	_ = godotenv.Load()

	cfg := &Config{
		InputPath:       getEnv("INPUT_PATH", "data/ride_bookings.csv"),
		OutputCleanPath: getEnv("OUTPUT_CLEAN_PATH", "data/ride_bookings_clean.csv"),
		DBPath:          getEnv("DB_PATH", "data/ride_bookings.db"),
		BatchSize:       getEnvAsInt("BATCH_SIZE", 1000),
		MaxRetries:      getEnvAsInt("MAX_RETRIES", 3),
		RetryDelay:      time.Duration(getEnvAsInt("RETRY_DELAY_MS", 500)) * time.Millisecond,
		HTTPAddr:        getEnv("HTTP_ADDR", ":8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures all required configuration is present and valid
func (c *Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input path is required")
	}

	if c.DBPath == "" {
		return errors.New("database path is required")
	}

	if c.BatchSize <= 0 {
		return errors.New("batch size must be positive")
	}

	if c.MaxRetries < 0 {
		return errors.New("max retries cannot be negative")
	}

	if c.RetryDelay < 0 {
		return errors.New("retry delay cannot be negative")
	}

	return nil
}

// Helper functions for environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

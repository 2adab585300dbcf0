package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	StoreBaseURL  string        // Base URL of the remote catalog store
	LegacyDataURL string        // URL of the legacy simplified-name dataset
	StoreTimeout  time.Duration // Per-request HTTP timeout against the store
	LogLevel      string
	LogFormat     string
	MetricsAddr   string // Optional listen address for /metrics; empty disables
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		StoreBaseURL:  getEnv("STORE_BASE_URL", ""),
		LegacyDataURL: getEnv("LEGACY_DATA_URL", ""),
		LogLevel:      getEnv("LOG_LEVEL", "INFO"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		MetricsAddr:   getEnv("METRICS_ADDR", ""),
	}

	timeoutStr := getEnv("STORE_TIMEOUT_SECONDS", "30")
	seconds, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STORE_TIMEOUT_SECONDS value: %w", err)
	}
	cfg.StoreTimeout = time.Duration(seconds) * time.Second

	if cfg.StoreBaseURL == "" {
		return nil, fmt.Errorf("STORE_BASE_URL environment variable must be set")
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

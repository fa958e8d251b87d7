// Package config provides configuration for the hub.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the hub configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Database
	DatabaseURL string

	// Liveness sweep
	SweepInterval time.Duration
	StaleAfter    time.Duration

	// Dispatch policy; empty means the built-in allow-all policy.
	PolicyFile string

	// Logging
	LogLevel string
}

// Load loads configuration from the environment, with an optional .env
// file in the working directory.
func Load() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		DatabaseURL:   getEnv("DATABASE_URL", "file:agenthub.db?cache=shared&mode=rwc"),
		SweepInterval: time.Duration(getEnvInt("SWEEP_INTERVAL_MS", 30000)) * time.Millisecond,
		StaleAfter:    time.Duration(getEnvInt("STALE_AFTER_MS", 60000)) * time.Millisecond,
		PolicyFile:    getEnv("DISPATCH_POLICY_FILE", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

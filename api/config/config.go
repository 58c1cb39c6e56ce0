package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds the global application configuration
var AppConfig *Config

// Config holds the application configuration
type Config struct {
	DatabaseURL string
	// Optional: sessions are kept in memory when empty
	RedisURL string
	// Path of the gateway options file
	OmnipayConfig string
	SessionTTL    string
	LogLevel      string
	// Optional: base URL for running remote HTTP integration tests (e.g., https://api.example.com)
	IntegrationBaseURL string
	// Server ports
	HTTPPort string
	GRPCPort string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{}

	// Try to load .env file from current directory and parent directories
	currentDir, _ := os.Getwd()
	for currentDir != "/" {
		envPath := filepath.Join(currentDir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			err = godotenv.Load(envPath)
			if err != nil {
				return nil, fmt.Errorf("failed to load .env file: %v", err)
			}
			break
		}
		currentDir = filepath.Dir(currentDir)
	}

	vars := []struct {
		name     string
		envVar   string
		display  string
		required bool
	}{
		{"DatabaseURL", "DATABASE_URL", "Database URL", true},
		{"RedisURL", "REDIS_URL", "Redis URL", false},
		{"OmnipayConfig", "OMNIPAY_CONFIG", "Omnipay config path", false},
		{"SessionTTL", "SESSION_TTL", "Session TTL", false},
		{"LogLevel", "LOG_LEVEL", "Log level", false},
		{"IntegrationBaseURL", "INTEGRATION_BASE_URL", "Integration Base URL", false},
		{"HTTPPort", "PORT", "HTTP Port", false},
		{"GRPCPort", "GRPC_PORT", "gRPC Port", false},
	}

	for _, v := range vars {
		value := os.Getenv(v.envVar)
		if v.required && value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", v.display)
		}
		configField := reflect.ValueOf(config).Elem().FieldByName(v.name)
		configField.SetString(value)
	}

	// Defaults
	if config.OmnipayConfig == "" {
		config.OmnipayConfig = "omnipay.yaml"
	}
	if config.SessionTTL == "" {
		config.SessionTTL = "24h"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}
	if config.GRPCPort == "" {
		config.GRPCPort = "50051"
	}
	if _, err := config.SessionLifetime(); err != nil {
		return nil, err
	}

	return config, nil
}

// SessionLifetime parses SessionTTL.
func (c *Config) SessionLifetime() (time.Duration, error) {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid SESSION_TTL %q: %w", c.SessionTTL, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid SESSION_TTL %q: must be positive", c.SessionTTL)
	}
	return d, nil
}

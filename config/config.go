package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Auth   AuthConfig
	Email  EmailConfig
	Logger LoggerConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port    int
	BaseURL string // public site URL embedded in email links
}

// MongoConfig holds MongoDB connection configuration.
type MongoConfig struct {
	URI      string
	Database string
}

// AuthConfig holds the shared secret used to verify identity-provider tokens.
type AuthConfig struct {
	JWTSecret string
}

// EmailConfig holds Postmark transport configuration.
type EmailConfig struct {
	PostmarkToken string
	Sender        string
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:    getEnvAsInt("PORT", 8000),
			BaseURL: getEnv("BASE_URL", "http://localhost:8000"),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database: getEnv("MONGODB_DB", "auroxa"),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
		},
		Email: EmailConfig{
			PostmarkToken: getEnv("POSTMARK_API_TOKEN", ""),
			Sender:        getEnv("EMAIL_SENDER", "support@auroxa.com"),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for obvious misconfiguration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("MongoDB URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("MongoDB database name is required")
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	return nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

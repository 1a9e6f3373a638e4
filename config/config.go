package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string
	BaseURL    string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration (optional, inspiration cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// OAuth providers
	SessionSecret         string
	GoogleClientID        string
	GoogleClientSecret    string
	MicrosoftClientID     string
	MicrosoftClientSecret string
	AppleClientID         string
	AppleClientSecret     string

	// AI content generation
	LLMAPIKey string
	LLMAPIURL string

	// Avatar storage
	S3Bucket  string
	AWSRegion string
}

// LoadConfig builds a Config from environment variables, falling back to
// Docker secrets for values not present in the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerPort: getValue("SERVER_PORT", "8080"),
		ServerHost: getValue("SERVER_HOST", "0.0.0.0"),
		BaseURL:    getValue("BASE_URL", "http://localhost:8080"),

		DBHost:    getValue("DB_HOST", "localhost"),
		DBPort:    getValue("DB_PORT", "5432"),
		DBUser:    getValue("DB_USER", "postgres"),
		DBName:    getValue("DB_NAME", "kolo_pohody"),
		DBSSLMode: getValue("DB_SSL_MODE", "disable"),

		RedisHost: getValue("REDIS_HOST", ""),
		RedisPort: getValue("REDIS_PORT", "6379"),
		RedisURL:  getValue("REDIS_URL", ""),

		GoogleClientID:        getValue("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:    getValue("GOOGLE_CLIENT_SECRET", ""),
		MicrosoftClientID:     getValue("MICROSOFT_CLIENT_ID", ""),
		MicrosoftClientSecret: getValue("MICROSOFT_CLIENT_SECRET", ""),
		AppleClientID:         getValue("APPLE_CLIENT_ID", ""),
		AppleClientSecret:     getValue("APPLE_CLIENT_SECRET", ""),

		LLMAPIKey: getValue("LLM_API_KEY", ""),
		LLMAPIURL: getValue("LLM_API_URL", ""),

		S3Bucket:  getValue("S3_BUCKET_NAME", "kolo-pohody-avatars"),
		AWSRegion: getValue("AWS_REGION", ""),
	}

	cfg.DBPassword = getValue("DB_PASSWORD", "")
	cfg.JWTSecret = getValue("JWT_SECRET", "")
	cfg.SessionSecret = getValue("SESSION_SECRET", "")
	cfg.RedisPassword = getValue("REDIS_PASSWORD", "")

	if dbStr := getValue("REDIS_DB", "0"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB value %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// getValue resolves a configuration value: environment variable first, then
// a Docker secret named after the lowercased variable, then the default.
func getValue(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	if v := readSecret(strings.ToLower(name)); v != "" {
		return v
	}
	return fallback
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

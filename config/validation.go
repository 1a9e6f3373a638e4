package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks the configuration for the current environment.
// The JWT secret is always required; database credentials are required
// outside development (development falls back to the local defaults, and
// tests run against SQLite without a server config at all).
func ValidateConfig(cfg *Config) error {
	var errs []string

	if cfg.JWTSecret == "" {
		errs = append(errs, "JWT_SECRET is required")
	}

	if IsProduction() || IsCI() {
		if cfg.DBPassword == "" {
			errs = append(errs, "DB_PASSWORD is required")
		}
		if cfg.SessionSecret == "" {
			errs = append(errs, "SESSION_SECRET is required")
		}
	}

	if cfg.ServerPort == "" {
		errs = append(errs, "SERVER_PORT must not be empty")
	}

	// Partial OAuth credentials are a misconfiguration: a provider with an
	// ID but no secret fails at token exchange, which is harder to debug.
	for _, p := range []struct {
		name       string
		id, secret string
	}{
		{"google", cfg.GoogleClientID, cfg.GoogleClientSecret},
		{"microsoft", cfg.MicrosoftClientID, cfg.MicrosoftClientSecret},
		{"apple", cfg.AppleClientID, cfg.AppleClientSecret},
	} {
		if (p.id == "") != (p.secret == "") {
			errs = append(errs, fmt.Sprintf("%s OAuth configuration is incomplete (client id and secret must both be set)", p.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}

	return nil
}

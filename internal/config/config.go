// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from environment
// variables and an optional config file.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all optional settings
//  2. Config File: Optional YAML config file (config.yaml)
//  3. Environment Variables: Override any setting
//
// Thread Safety:
// Config is immutable after Load() and safe for concurrent read access
// from multiple goroutines.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Security SecurityConfig `koanf:"security"`
	API      APIConfig      `koanf:"api"`
	Logging  LoggingConfig  `koanf:"logging"`
	Health   HealthConfig   `koanf:"health"`
}

// ServerConfig holds HTTP server settings.
//
// Environment Variables:
//   - HTTP_PORT: Listen port (default: 8086)
//   - HTTP_HOST: Bind address (default: 0.0.0.0)
//   - HTTP_TIMEOUT: Read/write timeout (default: 30s)
type ServerConfig struct {
	Port    int           `koanf:"port"`
	Host    string        `koanf:"host"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds SQLite storage settings.
type DatabaseConfig struct {
	// Path is the SQLite database file. Use ":memory:" for an
	// in-process database (tests, local experiments).
	Path string `koanf:"path"`
}

// SecurityConfig holds the gateway trust and token validation settings.
type SecurityConfig struct {
	// GatewaySecret is the shared secret the API gateway injects via the
	// X-Gateway-Secret header. When empty the trusted-origin gate is
	// DISABLED and every request passes it. This fail-open escape hatch
	// is intentional for local development; a warning is logged at
	// startup when the gate is off.
	GatewaySecret string `koanf:"gateway_secret"`

	JWT JWTConfig `koanf:"jwt"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// JWTConfig holds bearer token validation settings. The service only
// validates tokens; it never issues them.
//
// Environment Variables:
//   - JWT_SECRET_KEY: HMAC signing key (REQUIRED - startup fails if empty)
//   - JWT_ISSUER: Expected token issuer
//   - JWT_AUDIENCE: Expected token audience
type JWTConfig struct {
	SecretKey string `koanf:"secret_key"`
	Issuer    string `koanf:"issuer"`
	Audience  string `koanf:"audience"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	// DefaultLanguage is the fallback for response messages when the
	// request carries no usable Accept-Language header.
	DefaultLanguage string `koanf:"default_language"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// HealthConfig holds health check thresholds.
type HealthConfig struct {
	// MemoryThresholdMB marks the full health check degraded when the
	// process allocates more than this many megabytes.
	MemoryThresholdMB int `koanf:"memory_threshold_mb"`
}

// Validate checks that required configuration is present and valid.
// The JWT signing key is mandatory: a service that cannot verify tokens
// must not start.
func (c *Config) Validate() error {
	if c.Security.JWT.SecretKey == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required but was empty")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", c.Server.Timeout)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("DB_PATH is required but was empty")
	}

	return c.validateLogging()
}

// validateLogging validates log level and format values.
func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error, fatal; got %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	return nil
}

// GateEnabled reports whether the trusted-origin gate is active.
func (c *Config) GateEnabled() bool {
	return c.Security.GatewaySecret != ""
}

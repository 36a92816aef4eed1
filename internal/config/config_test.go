// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package config

import (
	"strings"
	"testing"
	"time"
)

// validConfig returns a config that passes Validate.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Security.JWT.SecretKey = "test-secret"
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty jwt secret",
			mutate:  func(c *Config) { c.Security.JWT.SecretKey = "" },
			wantErr: "JWT_SECRET_KEY",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "port too high",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "HTTP_PORT",
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "HTTP_TIMEOUT",
		},
		{
			name:    "empty database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: "DB_PATH",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "LOG_LEVEL",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "LOG_FORMAT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestGateEnabled(t *testing.T) {
	cfg := validConfig()
	if cfg.GateEnabled() {
		t.Error("GateEnabled() = true with empty secret, want false")
	}

	cfg.Security.GatewaySecret = "shared-secret"
	if !cfg.GateEnabled() {
		t.Error("GateEnabled() = false with secret set, want true")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8086 {
		t.Errorf("default port = %d, want 8086", cfg.Server.Port)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("default timeout = %s, want 30s", cfg.Server.Timeout)
	}
	if cfg.API.DefaultLanguage != "es" {
		t.Errorf("default language = %q, want es", cfg.API.DefaultLanguage)
	}
	if cfg.GateEnabled() {
		t.Error("gate enabled by default, want disabled")
	}
	if cfg.Security.JWT.SecretKey != "" {
		t.Error("default JWT secret is non-empty, want empty so startup fails without one")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"GATEWAY_SECRET", "security.gateway_secret"},
		{"JWT_SECRET_KEY", "security.jwt.secret_key"},
		{"JWT_ISSUER", "security.jwt.issuer"},
		{"JWT_AUDIENCE", "security.jwt.audience"},
		{"HTTP_PORT", "server.port"},
		{"DB_PATH", "database.path"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DEFAULT_LANGUAGE", "api.default_language"},
		{"LOG_LEVEL", "logging.level"},
		{"PATH", ""},
		{"HOME", ""},
		{"RANDOM_UNRELATED_VAR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			if got := envTransformFunc(tt.env); got != tt.want {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.env, got, tt.want)
			}
		})
	}
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/auth"
	"github.com/mfigueredo/reports-service/internal/config"
	"github.com/mfigueredo/reports-service/internal/database"
	"github.com/mfigueredo/reports-service/internal/middleware"
	"github.com/mfigueredo/reports-service/internal/models"
)

const testGatewaySecret = "test-gateway-secret"

// newTestConfig returns a config suitable for handler tests: in-memory
// database, gate enabled, rate limiting off.
func newTestConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8086, Host: "127.0.0.1", Timeout: 30 * time.Second},
		Database: config.DatabaseConfig{
			Path: ":memory:",
		},
		Security: config.SecurityConfig{
			GatewaySecret: testGatewaySecret,
			JWT: config.JWTConfig{
				SecretKey: "test-secret-key-for-token-validation",
				Issuer:    "auth-service",
				Audience:  "reports-service",
			},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: true,
			CORSOrigins:       []string{"*"},
		},
		API:     config.APIConfig{DefaultLanguage: "es"},
		Logging: config.LoggingConfig{Level: "error", Format: "json"},
		Health:  config.HealthConfig{MemoryThresholdMB: 4096},
	}
}

// newTestServer builds the full routing tree backed by an in-memory
// database, so tests exercise the real middleware pipeline.
func newTestServer(t *testing.T) (http.Handler, *database.DB) {
	t.Helper()

	cfg := newTestConfig()
	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})

	validator, err := auth.NewTokenValidator(&cfg.Security.JWT)
	if err != nil {
		t.Fatalf("failed to create token validator: %v", err)
	}

	router := NewRouter(NewHandler(db, cfg), auth.NewAuthenticator(validator), cfg)
	return router.Setup(), db
}

// doRequest sends a request through the router with the gateway secret
// and optional user headers set.
func doRequest(t *testing.T, handler http.Handler, method, path string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(method, path, body)
	r.Header.Set(middleware.GatewaySecretHeader, testGatewaySecret)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// decodeResponse unmarshals an APIResponse body.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response %s: %v", w.Body.String(), err)
	}
	return resp
}

func TestGatewayBlocksDirectAPIAccess(t *testing.T) {
	handler, _ := newTestServer(t)

	r := httptest.NewRequest("GET", "/api/v1/reports", nil)
	r.Header.Set("X-User-Id", "5")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d without gateway secret, want 403", w.Code)
	}
}

func TestHealthEndpointsBypassGateway(t *testing.T) {
	handler, _ := newTestServer(t)

	for _, path := range []string{"/health", "/health/live", "/health/ready"} {
		t.Run(path, func(t *testing.T) {
			r := httptest.NewRequest("GET", path, nil)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d for %s without gateway secret, want 200", w.Code, path)
			}
		})
	}
}

func TestMetricsEndpointBypassesGateway(t *testing.T) {
	handler, _ := newTestServer(t)

	r := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d for /metrics without gateway secret, want 200", w.Code)
	}
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

// Package main is the entry point for the reports service.
//
// The reports service stores generated analysis reports and per-user
// analysis history behind an API gateway. Every API request passes a
// fixed pipeline: gateway secret check, bearer token validation,
// identity resolution, then per-resource authorization inside the
// handlers.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: Load settings from environment variables and config files (Koanf v2)
//  2. Logging: Configure zerolog from LOG_LEVEL / LOG_FORMAT
//  3. Database: Open SQLite storage and run schema migrations
//  4. Token Validator: HMAC token validation (startup fails if JWT_SECRET_KEY is empty)
//  5. HTTP Server: Chi router with history, reports, health and metrics endpoints
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Environment variables (GATEWAY_SECRET, JWT_SECRET_KEY, DB_PATH, ...)
//   - Config file (config.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the database connection
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mfigueredo/reports-service/internal/api"
	"github.com/mfigueredo/reports-service/internal/auth"
	"github.com/mfigueredo/reports-service/internal/config"
	"github.com/mfigueredo/reports-service/internal/database"
	"github.com/mfigueredo/reports-service/internal/logging"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Use default logger for config errors (config not yet available)
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize zerolog with configuration
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Bool("gateway_enabled", cfg.GateEnabled()).
		Msg("Configuration loaded")

	if !cfg.GateEnabled() {
		logging.Warn().Msg("GATEWAY_SECRET is empty, trusted-origin gate is DISABLED and direct access is allowed")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	validator, err := auth.NewTokenValidator(&cfg.Security.JWT)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize token validator")
	}

	handler := api.NewHandler(db, cfg)
	router := api.NewRouter(handler, auth.NewAuthenticator(validator), cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("Server starting")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}

	logging.Info().Msg("Application stopped gracefully")
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

// Package api provides the HTTP handlers and routing for the reports
// service.
package api

import (
	"net/http"
	"time"

	"github.com/mfigueredo/reports-service/internal/config"
	"github.com/mfigueredo/reports-service/internal/database"
	"github.com/mfigueredo/reports-service/internal/i18n"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	db        *database.DB
	cfg       *config.Config
	startTime time.Time
}

// NewHandler creates a new API handler.
func NewHandler(db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		startTime: time.Now(),
	}
}

// lang negotiates the response language from the Accept-Language header,
// falling back to the configured default.
func (h *Handler) lang(r *http.Request) string {
	return i18n.Match(r.Header.Get("Accept-Language"), h.cfg.API.DefaultLanguage)
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/mfigueredo/reports-service/docs"
	"github.com/mfigueredo/reports-service/internal/auth"
	"github.com/mfigueredo/reports-service/internal/config"
	"github.com/mfigueredo/reports-service/internal/middleware"
)

// Router wires handlers and middleware into the HTTP routing tree.
type Router struct {
	handler       *Handler
	authenticator *auth.Authenticator
	chiMiddleware *ChiMiddleware
	cfg           *config.Config
}

// NewRouter creates a router with all dependencies.
func NewRouter(handler *Handler, authenticator *auth.Authenticator, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		authenticator: authenticator,
		chiMiddleware: NewChiMiddlewareFromConfig(
			cfg.Security.CORSOrigins,
			cfg.Security.RateLimitReqs,
			cfg.Security.RateLimitWindow,
			cfg.Security.RateLimitDisabled,
		),
		cfg: cfg,
	}
}

// Setup configures all HTTP routes using Chi router.
//
// The /api/v1 tree runs the full request pipeline in fixed order:
// gateway secret check, token validation, identity resolution, then the
// handler. Health probes, metrics and the Swagger UI stay outside the
// gateway check so orchestrators and operators can reach them directly.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(chiMiddleware(middleware.RequestID)) // Add X-Request-ID header with logging context
	r.Use(chimiddleware.RealIP)                // Extract real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)             // Recover from panics
	r.Use(router.chiMiddleware.CORS())         // CORS must be global to handle OPTIONS preflight

	// ========================
	// Health Endpoints
	// ========================
	// Not behind the gateway check: liveness and readiness probes come
	// straight from the orchestrator, not through the API gateway.
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// ========================
	// Core API Endpoints
	// ========================
	// Pipeline order is fixed: gateway check runs first so rejected
	// requests never reach token validation or handlers.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware(middleware.Gateway(router.cfg.Security.GatewaySecret)))
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(router.authenticator.Authenticate))
		r.Use(chiMiddleware(auth.ResolveIdentity))

		r.Route("/history", func(r chi.Router) {
			r.Get("/", router.handler.HistoryList)
			r.Get("/all", router.handler.HistoryListAll)
			r.Get("/by-user/{userId}", router.handler.HistoryByUser)
			r.Get("/by-analysis/{analysisId}", router.handler.HistoryByAnalysis)
			r.Post("/", router.handler.HistoryCreate)
			r.Delete("/{id}", router.handler.HistoryDelete)
			r.Delete("/", router.handler.HistoryDeleteAll)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", router.handler.ReportList)
			r.Get("/by-analysis/{analysisId}", router.handler.ReportsByAnalysis)
			r.Get("/by-date/{date}", router.handler.ReportsByDate)
			r.Get("/by-format/{format}", router.handler.ReportsByFormat)
			r.Post("/", router.handler.ReportCreate)
			r.Delete("/{id}", router.handler.ReportDelete)
			r.Delete("/", router.handler.ReportDeleteAll)
		})
	})

	// ========================
	// Observability
	// ========================
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}

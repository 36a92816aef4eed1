// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/mfigueredo/reports-service/internal/models"
)

// Health returns the full health report with individual checks.
//
//	@Summary		Full health check
//	@Description	Returns overall service health with per-check details
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	models.HealthStatus
//	@Router			/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	checks := []models.HealthCheck{}
	overall := "healthy"

	// Application check - always healthy if we can serve this request
	appStart := time.Now()
	checks = append(checks, models.HealthCheck{
		Name:     "application",
		Status:   "healthy",
		Duration: float64(time.Since(appStart).Microseconds()) / 1000,
	})

	// Memory check against the configured threshold
	memStart := time.Now()
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	allocMB := memStats.Alloc / 1024 / 1024
	memStatus := "healthy"
	if int(allocMB) > h.cfg.Health.MemoryThresholdMB {
		memStatus = "degraded"
		overall = "degraded"
	}
	checks = append(checks, models.HealthCheck{
		Name:     "memory",
		Status:   memStatus,
		Detail:   fmt.Sprintf("%d MB allocated (threshold %d MB)", allocMB, h.cfg.Health.MemoryThresholdMB),
		Duration: float64(time.Since(memStart).Microseconds()) / 1000,
	})

	// Database connectivity check
	dbStart := time.Now()
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil
	dbStatus := "healthy"
	if !dbConnected {
		dbStatus = "unhealthy"
		overall = "unhealthy"
	}
	checks = append(checks, models.HealthCheck{
		Name:     "database",
		Status:   dbStatus,
		Duration: float64(time.Since(dbStart).Microseconds()) / 1000,
	})

	status := http.StatusOK
	if overall == "unhealthy" {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "success",
		Data: models.HealthStatus{
			Status:            overall,
			Version:           Version,
			DatabaseConnected: dbConnected,
			Uptime:            time.Since(h.startTime).Seconds(),
			Checks:            checks,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthLive is the liveness probe. It only confirms the process is
// serving requests.
//
//	@Summary		Liveness probe
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Router			/health/live [get]
func (h *Handler) HealthLive(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "alive"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// HealthReady is the readiness probe. The service is ready when the
// database answers a ping.
//
//	@Summary		Readiness probe
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Failure		503	{object}	models.APIResponse
//	@Router			/health/ready [get]
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	if h.db == nil || h.db.Ping(r.Context()) != nil {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status:   "error",
			Data:     map[string]string{"status": "not_ready"},
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    "NOT_READY",
				Message: "Database is not reachable",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     map[string]string{"status": "ready"},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

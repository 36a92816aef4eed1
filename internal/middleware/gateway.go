// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package middleware

import (
	"crypto/subtle"
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/logging"
	"github.com/mfigueredo/reports-service/internal/metrics"
	"github.com/mfigueredo/reports-service/internal/models"
)

// GatewaySecretHeader carries the shared secret the API gateway injects
// into every forwarded request.
const GatewaySecretHeader = "X-Gateway-Secret"

// Gateway enforces that requests arrive through the trusted API
// gateway. Every API request must carry the shared secret in the
// X-Gateway-Secret header; requests that lack it or carry the wrong
// value are rejected with 403 before any downstream middleware or
// handler runs.
//
// An empty configured secret disables the gate entirely. That fail-open
// behavior is intentional for local development; main logs a warning at
// startup when the gate is off.
//
// The two rejection reasons stay distinguishable in the response body
// and in the gateway_rejections_total metric so operators can tell a
// misrouted client from a misconfigured gateway.
func Gateway(secret string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		if secret == "" {
			return next
		}

		return func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(GatewaySecretHeader)

			if provided == "" {
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Str("reason", "missing").
					Msg("Rejected direct access without gateway secret")
				metrics.RecordGatewayRejection("missing")
				rejectGateway(w, "GATEWAY_SECRET_MISSING", "Direct access to microservice is not allowed")
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				logging.Ctx(r.Context()).Warn().
					Str("path", r.URL.Path).
					Str("remote_addr", r.RemoteAddr).
					Str("reason", "invalid").
					Msg("Rejected request with invalid gateway secret")
				metrics.RecordGatewayRejection("invalid")
				rejectGateway(w, "GATEWAY_SECRET_INVALID", "Invalid Gateway secret")
				return
			}

			next(w, r)
		}
	}
}

// rejectGateway writes a 403 response for a failed gateway check.
func rejectGateway(w http.ResponseWriter, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)

	response := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.Error().Err(err).Msg("Failed to encode gateway rejection response")
	}
}

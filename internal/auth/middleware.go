// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package auth

import (
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/logging"
	"github.com/mfigueredo/reports-service/internal/models"
)

// Authenticator provides token validation middleware.
type Authenticator struct {
	validator *TokenValidator
}

// NewAuthenticator creates authentication middleware backed by the
// given token validator.
func NewAuthenticator(validator *TokenValidator) *Authenticator {
	return &Authenticator{validator: validator}
}

// Authenticate validates the bearer token on a request, if one is
// present.
//
// Behavior:
//   - No Authorization header: the request continues with no claims.
//     Anonymous requests are legal at this layer; authorization decides
//     per-operation whether they may proceed.
//   - Bearer token present and valid: claims are stored in the request
//     context and the request continues.
//   - Bearer token present but invalid: the request is rejected
//     immediately with 401 and a WWW-Authenticate challenge. A client
//     that chose to present credentials must present valid ones.
func (a *Authenticator) Authenticate(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := extractBearerToken(r)
		if tokenString == "" {
			next(w, r)
			return
		}

		claims, err := a.validator.Validate(tokenString)
		if err != nil {
			logging.Ctx(r.Context()).Warn().
				Err(err).
				Str("path", r.URL.Path).
				Msg("Rejected invalid bearer token")
			sendBearerChallenge(w)
			return
		}

		next(w, r.WithContext(WithClaims(r.Context(), claims)))
	}
}

// ResolveIdentity resolves the caller identity from trusted headers and
// validated claims and stores it in the request context. It runs after
// Authenticate and never rejects a request.
func ResolveIdentity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity := Resolve(r, ClaimsFromContext(r.Context()))

		if identity.IsAuthenticated {
			logging.Ctx(r.Context()).Debug().
				Int("user_id", identity.UserID).
				Str("role", identity.Role.String()).
				Msg("Resolved caller identity")
		}

		next(w, r.WithContext(WithIdentity(r.Context(), identity)))
	}
}

// extractBearerToken pulls the token out of an "Authorization: Bearer"
// header. Returns empty string when the header is absent or uses a
// different scheme.
func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// sendBearerChallenge writes a 401 response with a bearer challenge.
func sendBearerChallenge(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="reports-service"`)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	response := models.APIResponse{
		Status: "error",
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: "Invalid or expired token",
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logging.Error().Err(err).Msg("Failed to encode authentication error response")
	}
}

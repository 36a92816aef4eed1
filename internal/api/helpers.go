// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/authz"
	"github.com/mfigueredo/reports-service/internal/i18n"
	"github.com/mfigueredo/reports-service/internal/logging"
	"github.com/mfigueredo/reports-service/internal/models"
	"github.com/mfigueredo/reports-service/internal/validation"
)

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
// This includes newlines, carriage returns, tabs, and other control characters that could
// allow attackers to forge log entries or corrupt log files.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		// Replace control characters (0x00-0x1F and 0x7F) with a safe representation
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	etag := generateETag(data)
	w.Header().Set("ETag", etag)

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// generateETag creates a simple ETag from data using FNV-1a hash
func generateETag(data []byte) string {
	hash := uint32(2166136261)
	for _, b := range data {
		hash ^= uint32(b)
		hash *= 16777619
	}
	return strconv.FormatUint(uint64(hash), 16)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	if err != nil {
		// Sanitize error output to prevent log injection attacks
		logging.Error().Str("code", sanitizeLogValue(code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}

	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Data:   nil,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: message,
		},
	})
}

// respondDecision translates a non-allow authorization decision into the
// matching HTTP error. Callers must only pass DecisionForbidden or
// DecisionUnauthenticated.
func respondDecision(w http.ResponseWriter, decision authz.Decision, lang string) {
	if decision == authz.DecisionUnauthenticated {
		respondError(w, http.StatusUnauthorized, "AUTHENTICATION_ERROR", i18n.Get(lang, "Error_Unauthorized"), nil)
		return
	}
	respondError(w, http.StatusForbidden, "AUTHORIZATION_ERROR", i18n.Get(lang, "Error_Forbidden"), nil)
}

// respondSuccess sends a success response with data and a localized message.
func respondSuccess(w http.ResponseWriter, status int, data interface{}, message string, queryTime time.Duration) {
	respondJSON(w, status, &models.APIResponse{
		Status:  "success",
		Data:    data,
		Message: message,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: queryTime.Milliseconds(),
		},
	})
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// pathIntParam extracts an integer path parameter from the Chi route
// context. Returns an error suitable for a 400 response when the value
// is missing or not a number.
func pathIntParam(r *http.Request, key string) (int, error) {
	value := chi.URLParam(r, key)
	if value == "" {
		return 0, fmt.Errorf("missing %s parameter", key)
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}

	return intValue, nil
}

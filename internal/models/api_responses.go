// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": [{"id": 3, "analysisId": 12, "format": "pdf", ...}],
//	  "metadata": {
//	    "timestamp": "2026-08-28T12:00:00Z",
//	    "query_time_ms": 4
//	  },
//	  "message": "Reports retrieved successfully"
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "NOT_FOUND",
//	    "message": "Report not found"
//	  },
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Message  string      `json:"message,omitempty"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
//
// Fields:
//   - Timestamp: Server time when the response was generated (RFC3339)
//   - QueryTimeMS: Database query execution time in milliseconds
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters
//   - DATABASE_ERROR: Query execution failure
//   - AUTHENTICATION_ERROR: Invalid or missing credentials
//   - AUTHORIZATION_ERROR: Insufficient permissions
//   - GATEWAY_SECRET_MISSING: Request did not come through the API gateway
//   - GATEWAY_SECRET_INVALID: Gateway secret did not match
//   - NOT_FOUND: Resource does not exist
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus describes the overall service health returned by /health.
type HealthStatus struct {
	Status            string        `json:"status"`
	Version           string        `json:"version"`
	DatabaseConnected bool          `json:"database_connected"`
	Uptime            float64       `json:"uptime_seconds"`
	Checks            []HealthCheck `json:"checks"`
}

// HealthCheck is a single named probe inside the full health report.
type HealthCheck struct {
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Detail   string  `json:"detail,omitempty"`
	Duration float64 `json:"duration_ms"`
}

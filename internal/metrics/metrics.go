// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

// Package metrics provides Prometheus metrics for the reports service.
//
// Metrics are registered with the default registry via promauto and
// exposed at /metrics by the router.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// reportsGenerated counts report creation attempts by format and outcome.
	reportsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_generated_total",
			Help: "Total number of report registrations by format and status",
		},
		[]string{"format", "status"},
	)

	// reportsQueries counts storage queries by logical operation.
	reportsQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_queries_total",
			Help: "Total number of storage queries by operation",
		},
		[]string{"operation"},
	)

	// reportsDeletions counts deleted report rows.
	reportsDeletions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reports_deletions_total",
			Help: "Total number of deleted reports",
		},
	)

	// historyAccess counts history reads per user.
	historyAccess = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reports_history_access_total",
			Help: "Total number of history collection reads by user",
		},
		[]string{"user_id"},
	)

	// reportGenerationDuration observes report registration latency by format.
	reportGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "report_generation_duration_seconds",
			Help:    "Report registration duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"format"},
	)

	// queryDuration observes storage query latency by operation.
	queryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reports_query_duration_seconds",
			Help:    "Storage query duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"operation"},
	)

	// totalSizeBytes tracks the combined size of stored report files.
	totalSizeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reports_total_size_bytes",
			Help: "Combined size of stored report files in bytes",
		},
	)

	// reportsByFormat tracks the current report count per format.
	reportsByFormat = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reports_by_format",
			Help: "Current number of stored reports by format",
		},
		[]string{"format"},
	)

	// gatewayRejections counts requests rejected by the trusted-origin gate.
	gatewayRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_rejections_total",
			Help: "Total number of requests rejected by the gateway secret check",
		},
		[]string{"reason"},
	)

	// authzDecisions counts authorization outcomes by operation.
	authzDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authz_decisions_total",
			Help: "Total number of authorization decisions by operation and outcome",
		},
		[]string{"operation", "decision"},
	)

	// apiRequests counts HTTP requests by method, endpoint and status code.
	apiRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	// apiRequestDuration observes HTTP request latency.
	apiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// apiActiveRequests tracks in-flight HTTP requests.
	apiActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)
)

// RecordQuery increments the query counter for a storage operation.
func RecordQuery(operation string) {
	reportsQueries.WithLabelValues(operation).Inc()
}

// ObserveQueryDuration records how long a storage operation took.
func ObserveQueryDuration(operation string, d time.Duration) {
	queryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordReportGenerated records a report registration attempt.
// Status is "success" or "error".
func RecordReportGenerated(format, status string, d time.Duration) {
	reportsGenerated.WithLabelValues(format, status).Inc()
	if status == "success" {
		reportGenerationDuration.WithLabelValues(format).Observe(d.Seconds())
	}
}

// RecordDeletion adds deleted report rows to the deletion counter.
func RecordDeletion(count int64) {
	reportsDeletions.Add(float64(count))
}

// RecordHistoryAccess records a history collection read for a user.
func RecordHistoryAccess(userID int) {
	historyAccess.WithLabelValues(strconv.Itoa(userID)).Inc()
}

// RecordGatewayRejection records a request rejected by the gate.
// Reason is "missing" or "invalid".
func RecordGatewayRejection(reason string) {
	gatewayRejections.WithLabelValues(reason).Inc()
}

// RecordAuthzDecision records an authorization outcome.
func RecordAuthzDecision(operation, decision string) {
	authzDecisions.WithLabelValues(operation, decision).Inc()
}

// RecordAPIRequest records a completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, d time.Duration) {
	apiRequests.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	apiRequestDuration.WithLabelValues(method, endpoint).Observe(d.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		apiActiveRequests.Inc()
	} else {
		apiActiveRequests.Dec()
	}
}

// SetReportsByFormat sets the current report count for a format.
func SetReportsByFormat(format string, count int) {
	reportsByFormat.WithLabelValues(format).Set(float64(count))
}

// SetTotalSizeBytes sets the combined stored report size gauge.
func SetTotalSizeBytes(bytes int64) {
	totalSizeBytes.Set(float64(bytes))
}

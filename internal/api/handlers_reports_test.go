// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/models"
)

func TestReportListRequiresAuthentication(t *testing.T) {
	handler, _ := newTestServer(t)

	w := doRequest(t, handler, "GET", "/api/v1/reports", nil, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d for anonymous caller, want 401", w.Code)
	}
}

func TestReportListSharedAcrossUsers(t *testing.T) {
	handler, db := newTestServer(t)

	if _, err := db.CreateReport(context.Background(), 12, models.FormatPDF, "/reports/12.pdf", time.Now().UTC()); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	// Reports are not owner-scoped; any authenticated caller sees them.
	w := doRequest(t, handler, "GET", "/api/v1/reports", nil, userHeaders("5"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	var reports []models.Report
	if err := json.Unmarshal(raw, &reports); err != nil {
		t.Fatalf("failed to decode reports: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(reports))
	}
	if reports[0].FilePath != "/reports/12.pdf" {
		t.Errorf("FilePath = %q, want /reports/12.pdf", reports[0].FilePath)
	}
}

func TestReportListEmptyReturnsOK(t *testing.T) {
	handler, _ := newTestServer(t)

	// An empty collection is a successful read, not a 404.
	w := doRequest(t, handler, "GET", "/api/v1/reports", nil, userHeaders("5"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d for empty reports, want 200; body: %s", w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	var reports []models.Report
	if err := json.Unmarshal(raw, &reports); err != nil {
		t.Fatalf("failed to decode reports: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("len(reports) = %d, want 0", len(reports))
	}
}

func TestReportsByAnalysis(t *testing.T) {
	handler, db := newTestServer(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := db.CreateReport(ctx, 12, models.FormatPDF, "/a.pdf", now); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}
	if _, err := db.CreateReport(ctx, 99, models.FormatPDF, "/b.pdf", now); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	w := doRequest(t, handler, "GET", "/api/v1/reports/by-analysis/12", nil, userHeaders("5"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	var reports []models.Report
	if err := json.Unmarshal(raw, &reports); err != nil {
		t.Fatalf("failed to decode reports: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("len(reports) = %d for analysis 12, want 1", len(reports))
	}
}

func TestReportsByDate(t *testing.T) {
	handler, db := newTestServer(t)
	ctx := context.Background()

	if _, err := db.CreateReport(ctx, 1, models.FormatJSON, "/r.json", time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	w := doRequest(t, handler, "GET", "/api/v1/reports/by-date/2026-08-20", nil, userHeaders("5"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	resp := decodeResponse(t, w)
	raw, _ := json.Marshal(resp.Data)
	var reports []models.Report
	if err := json.Unmarshal(raw, &reports); err != nil {
		t.Fatalf("failed to decode reports: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("len(reports) = %d for 2026-08-20, want 1", len(reports))
	}
}

func TestReportsByDateRejectsMalformedDate(t *testing.T) {
	handler, _ := newTestServer(t)

	for _, date := range []string{"20-08-2026", "2026-8-20", "yesterday"} {
		t.Run(date, func(t *testing.T) {
			w := doRequest(t, handler, "GET", "/api/v1/reports/by-date/"+date, nil, userHeaders("5"))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d for date %q, want 400", w.Code, date)
			}
		})
	}
}

func TestReportsByFormatCaseInsensitive(t *testing.T) {
	handler, db := newTestServer(t)
	ctx := context.Background()
	now := time.Now().UTC()

	if _, err := db.CreateReport(ctx, 1, models.FormatPDF, "/a.pdf", now); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}
	if _, err := db.CreateReport(ctx, 1, models.FormatExcel, "/a.xlsx", now); err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	for _, format := range []string{"pdf", "PDF", "Pdf"} {
		t.Run(format, func(t *testing.T) {
			w := doRequest(t, handler, "GET", "/api/v1/reports/by-format/"+format, nil, userHeaders("5"))
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d for format %q, want 200", w.Code, format)
			}

			resp := decodeResponse(t, w)
			raw, _ := json.Marshal(resp.Data)
			var reports []models.Report
			if err := json.Unmarshal(raw, &reports); err != nil {
				t.Fatalf("failed to decode reports: %v", err)
			}
			if len(reports) != 1 {
				t.Errorf("len(reports) = %d for pdf, want 1", len(reports))
			}
		})
	}
}

func TestReportsByFormatRejectsUnknownFormat(t *testing.T) {
	handler, _ := newTestServer(t)

	w := doRequest(t, handler, "GET", "/api/v1/reports/by-format/docx", nil, userHeaders("5"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d for unknown format, want 400", w.Code)
	}
}

func TestReportCreate(t *testing.T) {
	handler, db := newTestServer(t)

	body := strings.NewReader(`{"analysisId": 12, "format": "HTML", "filePath": "/reports/12.html", "generationDate": "2026-08-20T14:30:00Z"}`)
	w := doRequest(t, handler, "POST", "/api/v1/reports", body, userHeaders("5"))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201; body: %s", w.Code, w.Body.String())
	}

	reports, err := db.ListReportsByAnalysis(context.Background(), 12)
	if err != nil {
		t.Fatalf("ListReportsByAnalysis failed: %v", err)
	}
	if len(reports) != 1 {
		t.Fatalf("len(reports) = %d, want 1", len(reports))
	}
	if reports[0].Format != models.FormatHTML {
		t.Errorf("Format = %s, want html", reports[0].Format)
	}
}

func TestReportCreateRequiresAuthentication(t *testing.T) {
	handler, _ := newTestServer(t)

	body := strings.NewReader(`{"analysisId": 12, "format": "pdf", "filePath": "/r.pdf"}`)
	w := doRequest(t, handler, "POST", "/api/v1/reports", body, nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d for anonymous caller, want 401", w.Code)
	}
}

func TestReportCreateValidation(t *testing.T) {
	handler, _ := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing analysis id", `{"format": "pdf", "filePath": "/r.pdf"}`},
		{"zero analysis id", `{"analysisId": 0, "format": "pdf", "filePath": "/r.pdf"}`},
		{"missing format", `{"analysisId": 12, "filePath": "/r.pdf"}`},
		{"unknown format", `{"analysisId": 12, "format": "docx", "filePath": "/r.pdf"}`},
		{"missing file path", `{"analysisId": 12, "format": "pdf"}`},
		{"malformed json", `{"analysisId": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, handler, "POST", "/api/v1/reports", strings.NewReader(tt.body), userHeaders("5"))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400; body: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestReportDelete(t *testing.T) {
	handler, db := newTestServer(t)

	report, err := db.CreateReport(context.Background(), 12, models.FormatPDF, "/r.pdf", time.Now().UTC())
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}

	w := doRequest(t, handler, "DELETE", "/api/v1/reports/"+itoa(report.ID), nil, userHeaders("5"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, handler, "DELETE", "/api/v1/reports/"+itoa(report.ID), nil, userHeaders("5"))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d for missing report, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Reporte no encontrado") {
		t.Errorf("body = %s, want Spanish not-found message", w.Body.String())
	}
}

func TestReportDeleteAll(t *testing.T) {
	handler, db := newTestServer(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 1; i <= 3; i++ {
		if _, err := db.CreateReport(ctx, i, models.FormatPDF, "/x.pdf", now); err != nil {
			t.Fatalf("CreateReport failed: %v", err)
		}
	}

	if w := doRequest(t, handler, "DELETE", "/api/v1/reports", nil, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d for anonymous delete-all, want 401", w.Code)
	}

	w := doRequest(t, handler, "DELETE", "/api/v1/reports", nil, userHeaders("5"))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body: %s", w.Code, w.Body.String())
	}

	reports, err := db.ListReports(ctx)
	if err != nil {
		t.Fatalf("ListReports failed: %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("len(reports) = %d after delete-all, want 0", len(reports))
	}
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package models

import (
	"testing"

	json "github.com/goccy/go-json"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    ReportFormat
		wantErr bool
	}{
		{"pdf", FormatPDF, false},
		{"PDF", FormatPDF, false},
		{"Pdf", FormatPDF, false},
		{" pdf ", FormatPDF, false},
		{"html", FormatHTML, false},
		{"json", FormatJSON, false},
		{"excel", FormatExcel, false},
		{"EXCEL", FormatExcel, false},
		{"docx", FormatPDF, true},
		{"", FormatPDF, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := []struct {
		format ReportFormat
		want   string
	}{
		{FormatPDF, "pdf"},
		{FormatHTML, "html"},
		{FormatJSON, "json"},
		{FormatExcel, "excel"},
		{ReportFormat(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFormatJSONRoundTrip(t *testing.T) {
	data, err := json.Marshal(FormatExcel)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"excel"` {
		t.Errorf("Marshal = %s, want \"excel\"", data)
	}

	var f ReportFormat
	if err := json.Unmarshal([]byte(`"HTML"`), &f); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if f != FormatHTML {
		t.Errorf("Unmarshal(\"HTML\") = %v, want FormatHTML", f)
	}

	if err := json.Unmarshal([]byte(`"docx"`), &f); err == nil {
		t.Error("Unmarshal(\"docx\") succeeded, want error")
	}
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package models

import (
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ReportFormat identifies the file format of a generated report.
// The wire representation is the lowercase format name ("pdf", "html",
// "json", "excel"); parsing accepts any letter case.
type ReportFormat int

const (
	FormatPDF ReportFormat = iota
	FormatHTML
	FormatJSON
	FormatExcel
)

var formatNames = map[ReportFormat]string{
	FormatPDF:   "pdf",
	FormatHTML:  "html",
	FormatJSON:  "json",
	FormatExcel: "excel",
}

// String returns the lowercase wire name of the format.
func (f ReportFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

// ParseFormat converts a format name to a ReportFormat. Matching is
// case-insensitive, so "PDF", "Pdf" and "pdf" all resolve to FormatPDF.
func ParseFormat(s string) (ReportFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return FormatPDF, nil
	case "html":
		return FormatHTML, nil
	case "json":
		return FormatJSON, nil
	case "excel":
		return FormatExcel, nil
	default:
		return FormatPDF, fmt.Errorf("unknown report format %q", s)
	}
}

// MarshalJSON encodes the format as its lowercase name.
func (f ReportFormat) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON decodes a format name, case-insensitively.
func (f *ReportFormat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Report is a generated analysis report stored by the service. The
// service records report metadata and the path of the rendered file; it
// does not render reports itself.
type Report struct {
	ID             int          `json:"id"`
	AnalysisID     int          `json:"analysisId"`
	Format         ReportFormat `json:"format"`
	FilePath       string       `json:"filePath"`
	GenerationDate time.Time    `json:"generationDate"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// CreateReportRequest is the payload for registering a new report.
type CreateReportRequest struct {
	AnalysisID     int       `json:"analysisId" validate:"required,gt=0"`
	Format         string    `json:"format" validate:"required"`
	FilePath       string    `json:"filePath" validate:"required,max=1024"`
	GenerationDate time.Time `json:"generationDate"`
}

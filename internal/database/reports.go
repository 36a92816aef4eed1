// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/mfigueredo/reports-service/internal/metrics"
	"github.com/mfigueredo/reports-service/internal/models"
)

const reportColumns = "id, analysis_id, format, file_path, generation_date, created_at, updated_at"

// ListReports returns all stored reports, newest generation first.
func (db *DB) ListReports(ctx context.Context) ([]models.Report, error) {
	return db.queryReports(ctx, "list_reports",
		"SELECT "+reportColumns+" FROM reports ORDER BY generation_date DESC")
}

// ListReportsByAnalysis returns the reports generated for one analysis.
func (db *DB) ListReportsByAnalysis(ctx context.Context, analysisID int) ([]models.Report, error) {
	return db.queryReports(ctx, "list_reports_by_analysis",
		"SELECT "+reportColumns+" FROM reports WHERE analysis_id = ? ORDER BY generation_date DESC",
		analysisID)
}

// ListReportsByDate returns the reports generated on a calendar day.
// Only the date part of generation_date is compared.
func (db *DB) ListReportsByDate(ctx context.Context, day time.Time) ([]models.Report, error) {
	return db.queryReports(ctx, "list_reports_by_date",
		"SELECT "+reportColumns+" FROM reports WHERE date(generation_date) = date(?) ORDER BY generation_date DESC",
		day.Format("2006-01-02"))
}

// ListReportsByFormat returns the reports with the given file format.
func (db *DB) ListReportsByFormat(ctx context.Context, format models.ReportFormat) ([]models.Report, error) {
	return db.queryReports(ctx, "list_reports_by_format",
		"SELECT "+reportColumns+" FROM reports WHERE format = ? ORDER BY generation_date DESC",
		format.String())
}

// CreateReport inserts a new report and returns it with assigned ID and
// timestamps.
func (db *DB) CreateReport(ctx context.Context, analysisID int, format models.ReportFormat, filePath string, generationDate time.Time) (*models.Report, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery("create_report")
		metrics.ObserveQueryDuration("create_report", time.Since(start))
	}()

	now := time.Now().UTC()
	if generationDate.IsZero() {
		generationDate = now
	}

	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO reports (analysis_id, format, file_path, generation_date, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		analysisID, format.String(), filePath, generationDate.UTC(), now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert report: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted report id: %w", err)
	}

	return &models.Report{
		ID:             int(id),
		AnalysisID:     analysisID,
		Format:         format,
		FilePath:       filePath,
		GenerationDate: generationDate.UTC(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

// DeleteReport removes one report. Returns ErrNotFound when no row with
// the given ID exists.
func (db *DB) DeleteReport(ctx context.Context, id int) error {
	start := time.Now()
	defer func() {
		metrics.RecordQuery("delete_report")
		metrics.ObserveQueryDuration("delete_report", time.Since(start))
	}()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete report %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	metrics.RecordDeletion(affected)
	return nil
}

// DeleteAllReports removes every report and returns how many rows were
// deleted.
func (db *DB) DeleteAllReports(ctx context.Context) (int64, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery("delete_all_reports")
		metrics.ObserveQueryDuration("delete_all_reports", time.Since(start))
	}()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM reports")
	if err != nil {
		return 0, fmt.Errorf("failed to delete reports: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	metrics.RecordDeletion(affected)
	return affected, nil
}

// RefreshReportGauges recomputes the per-format report count gauges and
// the combined on-disk size of the registered report files. Files that
// no longer exist on disk are skipped.
func (db *DB) RefreshReportGauges(ctx context.Context) error {
	rows, err := db.conn.QueryContext(ctx, "SELECT format, file_path FROM reports")
	if err != nil {
		return fmt.Errorf("failed to read report gauge data: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	counts := map[string]int{"pdf": 0, "html": 0, "json": 0, "excel": 0}
	var totalSize int64
	for rows.Next() {
		var format, filePath string
		if err := rows.Scan(&format, &filePath); err != nil {
			return fmt.Errorf("failed to scan report gauge row: %w", err)
		}
		counts[format]++
		if info, err := os.Stat(filePath); err == nil {
			totalSize += info.Size()
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate report gauge rows: %w", err)
	}

	for format, count := range counts {
		metrics.SetReportsByFormat(format, count)
	}
	metrics.SetTotalSizeBytes(totalSize)
	return nil
}

// queryReports runs a SELECT over the reports table and scans the rows.
func (db *DB) queryReports(ctx context.Context, operation, query string, args ...interface{}) ([]models.Report, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery(operation)
		metrics.ObserveQueryDuration(operation, time.Since(start))
	}()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	reports := []models.Report{}
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}

	return reports, nil
}

// scanReport reads one report row, converting the stored format name
// back to its enum value.
func scanReport(rows *sql.Rows) (models.Report, error) {
	var report models.Report
	var formatName string

	if err := rows.Scan(
		&report.ID,
		&report.AnalysisID,
		&formatName,
		&report.FilePath,
		&report.GenerationDate,
		&report.CreatedAt,
		&report.UpdatedAt,
	); err != nil {
		return models.Report{}, fmt.Errorf("failed to scan report: %w", err)
	}

	format, err := models.ParseFormat(formatName)
	if err != nil {
		return models.Report{}, fmt.Errorf("stored report %d has invalid format: %w", report.ID, err)
	}
	report.Format = format

	return report, nil
}

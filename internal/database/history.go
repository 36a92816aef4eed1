// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mfigueredo/reports-service/internal/metrics"
	"github.com/mfigueredo/reports-service/internal/models"
)

const historyColumns = "id, user_id, analysis_id, created_at, updated_at"

// ListAllHistory returns every user's analysis history, newest first.
func (db *DB) ListAllHistory(ctx context.Context) ([]models.History, error) {
	return db.queryHistory(ctx, "list_all_history",
		"SELECT "+historyColumns+" FROM history ORDER BY created_at DESC")
}

// ListHistoryByUser returns the analysis history of one user, newest
// first.
func (db *DB) ListHistoryByUser(ctx context.Context, userID int) ([]models.History, error) {
	return db.queryHistory(ctx, "list_history_by_user",
		"SELECT "+historyColumns+" FROM history WHERE user_id = ? ORDER BY created_at DESC",
		userID)
}

// ListHistoryByAnalysis returns every history entry referencing an
// analysis, regardless of owner.
func (db *DB) ListHistoryByAnalysis(ctx context.Context, analysisID int) ([]models.History, error) {
	return db.queryHistory(ctx, "list_history_by_analysis",
		"SELECT "+historyColumns+" FROM history WHERE analysis_id = ? ORDER BY created_at DESC",
		analysisID)
}

// CreateHistory inserts a history entry for a user and returns it with
// assigned ID and timestamps.
func (db *DB) CreateHistory(ctx context.Context, userID, analysisID int) (*models.History, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery("create_history")
		metrics.ObserveQueryDuration("create_history", time.Since(start))
	}()

	now := time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		"INSERT INTO history (user_id, analysis_id, created_at, updated_at) VALUES (?, ?, ?, ?)",
		userID, analysisID, now, now)
	if err != nil {
		return nil, fmt.Errorf("failed to insert history entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read inserted history id: %w", err)
	}

	return &models.History{
		ID:         int(id),
		UserID:     userID,
		AnalysisID: analysisID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// DeleteHistory removes one history entry. Returns ErrNotFound when no
// row with the given ID exists.
func (db *DB) DeleteHistory(ctx context.Context, id int) error {
	start := time.Now()
	defer func() {
		metrics.RecordQuery("delete_history")
		metrics.ObserveQueryDuration("delete_history", time.Since(start))
	}()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete history entry %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteAllHistory removes every history entry and returns how many
// rows were deleted.
func (db *DB) DeleteAllHistory(ctx context.Context) (int64, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery("delete_all_history")
		metrics.ObserveQueryDuration("delete_all_history", time.Since(start))
	}()

	result, err := db.conn.ExecContext(ctx, "DELETE FROM history")
	if err != nil {
		return 0, fmt.Errorf("failed to delete history: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected, nil
}

// queryHistory runs a SELECT over the history table and scans the rows.
func (db *DB) queryHistory(ctx context.Context, operation, query string, args ...interface{}) ([]models.History, error) {
	start := time.Now()
	defer func() {
		metrics.RecordQuery(operation)
		metrics.ObserveQueryDuration(operation, time.Since(start))
	}()

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	entries := []models.History{}
	for rows.Next() {
		var entry models.History
		if err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.AnalysisID,
			&entry.CreatedAt,
			&entry.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}

	return entries, nil
}

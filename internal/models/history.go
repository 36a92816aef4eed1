// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package models

import "time"

// History is a single entry in a user's analysis history, linking a
// user to an analysis they ran.
type History struct {
	ID         int       `json:"id"`
	UserID     int       `json:"userId"`
	AnalysisID int       `json:"analysisId"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateHistoryRequest is the payload for recording a history entry.
// The UserID field is advisory only: the service always persists the
// entry under the authenticated caller's ID, regardless of what the
// client submits here.
type CreateHistoryRequest struct {
	UserID     int `json:"userId"`
	AnalysisID int `json:"analysisId" validate:"required,gt=0"`
}

// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/auth"
	"github.com/mfigueredo/reports-service/internal/authz"
	"github.com/mfigueredo/reports-service/internal/database"
	"github.com/mfigueredo/reports-service/internal/i18n"
	"github.com/mfigueredo/reports-service/internal/logging"
	"github.com/mfigueredo/reports-service/internal/metrics"
	"github.com/mfigueredo/reports-service/internal/models"
)

// HistoryList returns the authenticated caller's own analysis history.
// The owner is always the caller; there is no way to request another
// user's collection through this endpoint, admin or not.
//
//	@Summary		Get own analysis history
//	@Description	Returns the analysis history of the authenticated caller
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	models.APIResponse{data=[]models.History}
//	@Failure		401	{object}	models.APIResponse
//	@Router			/api/v1/history [get]
func (h *Handler) HistoryList(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	const op = authz.OpReadOwnCollection
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return
	}

	ownerID := authz.EffectiveOwner(caller, 0, op)

	start := time.Now()
	entries, err := h.db.ListHistoryByUser(r.Context(), ownerID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	metrics.RecordHistoryAccess(ownerID)
	respondSuccess(w, http.StatusOK, entries, i18n.Get(lang, "Success_HistoryList"), time.Since(start))
}

// HistoryListAll returns every user's analysis history. Admin only.
//
//	@Summary		Get all users' analysis history
//	@Description	Returns the analysis history of every user (admin only)
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	models.APIResponse{data=[]models.History}
//	@Failure		401	{object}	models.APIResponse
//	@Failure		403	{object}	models.APIResponse
//	@Router			/api/v1/history/all [get]
func (h *Handler) HistoryListAll(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	const op = authz.OpReadAll
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		logging.Ctx(r.Context()).Warn().
			Int("caller_id", caller.UserID).
			Str("decision", decision.String()).
			Msg("Full history access denied")
		respondDecision(w, decision, lang)
		return
	}

	start := time.Now()
	entries, err := h.db.ListAllHistory(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, entries, i18n.Get(lang, "Success_HistoryList"), time.Since(start))
}

// HistoryByUser returns the analysis history of an explicitly named
// user. Only that user or an admin may read it.
//
//	@Summary		Get a user's analysis history
//	@Description	Returns the analysis history of the named user (self or admin only)
//	@Tags			history
//	@Produce		json
//	@Param			userId	path		int	true	"User ID"
//	@Success		200		{object}	models.APIResponse{data=[]models.History}
//	@Failure		401		{object}	models.APIResponse
//	@Failure		403		{object}	models.APIResponse
//	@Router			/api/v1/history/by-user/{userId} [get]
func (h *Handler) HistoryByUser(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	requestedID, err := pathIntParam(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	const op = authz.OpReadByOwner
	decision := authz.Authorize(caller, requestedID, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		logging.Ctx(r.Context()).Warn().
			Int("caller_id", caller.UserID).
			Int("requested_id", requestedID).
			Str("decision", decision.String()).
			Msg("History access denied")
		respondDecision(w, decision, lang)
		return
	}

	start := time.Now()
	entries, err := h.db.ListHistoryByUser(r.Context(), requestedID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	metrics.RecordHistoryAccess(requestedID)
	respondSuccess(w, http.StatusOK, entries, i18n.Get(lang, "Success_HistoryList"), time.Since(start))
}

// HistoryByAnalysis returns every history entry referencing an
// analysis. The data is not scoped to one owner, so any authenticated
// caller may read it.
//
//	@Summary		Get history entries by analysis
//	@Description	Returns all history entries referencing an analysis
//	@Tags			history
//	@Produce		json
//	@Param			analysisId	path		int	true	"Analysis ID"
//	@Success		200			{object}	models.APIResponse{data=[]models.History}
//	@Failure		401			{object}	models.APIResponse
//	@Router			/api/v1/history/by-analysis/{analysisId} [get]
func (h *Handler) HistoryByAnalysis(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	analysisID, err := pathIntParam(r, "analysisId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	const op = authz.OpReadShared
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return
	}

	start := time.Now()
	entries, err := h.db.ListHistoryByAnalysis(r.Context(), analysisID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, entries, i18n.Get(lang, "Success_HistoryList"), time.Since(start))
}

// HistoryCreate records a history entry for the authenticated caller.
// The entry is always persisted under the caller's own user ID; a
// userId submitted in the body is ignored, with no admin exception.
//
//	@Summary		Record a history entry
//	@Description	Records an analysis history entry owned by the authenticated caller
//	@Tags			history
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CreateHistoryRequest	true	"History entry"
//	@Success		201		{object}	models.APIResponse{data=models.History}
//	@Failure		400		{object}	models.APIResponse
//	@Failure		401		{object}	models.APIResponse
//	@Router			/api/v1/history [post]
func (h *Handler) HistoryCreate(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	const op = authz.OpCreateOwn
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return
	}

	var req models.CreateHistoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", i18n.Get(lang, "Error_ValidationFailed"), err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	ownerID := authz.EffectiveOwner(caller, req.UserID, op)

	start := time.Now()
	entry, err := h.db.CreateHistory(r.Context(), ownerID, req.AnalysisID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("user_id", ownerID).
		Int("analysis_id", req.AnalysisID).
		Int("history_id", entry.ID).
		Msg("History entry created")
	respondSuccess(w, http.StatusCreated, entry, i18n.Get(lang, "Success_HistoryCreated"), time.Since(start))
}

// HistoryDelete removes one history entry by ID.
//
//	@Summary		Delete a history entry
//	@Description	Deletes one history entry by ID
//	@Tags			history
//	@Produce		json
//	@Param			id	path		int	true	"History entry ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		401	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/history/{id} [delete]
func (h *Handler) HistoryDelete(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	id, err := pathIntParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	const op = authz.OpDeleteSingle
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return
	}

	start := time.Now()
	if err := h.db.DeleteHistory(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", i18n.Get(lang, "Error_HistoryNotFound"), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, nil, i18n.Get(lang, "Success_HistoryDeleted"), time.Since(start))
}

// HistoryDeleteAll removes every history entry.
//
//	@Summary		Delete all history
//	@Description	Deletes every history entry
//	@Tags			history
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Failure		401	{object}	models.APIResponse
//	@Router			/api/v1/history [delete]
func (h *Handler) HistoryDeleteAll(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	const op = authz.OpDeleteAll
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return
	}

	start := time.Now()
	deleted, err := h.db.DeleteAllHistory(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("caller_id", caller.UserID).
		Int64("deleted", deleted).
		Msg("All history deleted")
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": deleted}, i18n.Get(lang, "Success_AllHistoryDeleted"), time.Since(start))
}

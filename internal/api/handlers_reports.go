// Reports Service - Report and History Storage Microservice
// Copyright 2026 M. Figueredo (mfigueredo)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mfigueredo/reports-service

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/mfigueredo/reports-service/internal/auth"
	"github.com/mfigueredo/reports-service/internal/authz"
	"github.com/mfigueredo/reports-service/internal/database"
	"github.com/mfigueredo/reports-service/internal/i18n"
	"github.com/mfigueredo/reports-service/internal/logging"
	"github.com/mfigueredo/reports-service/internal/metrics"
	"github.com/mfigueredo/reports-service/internal/models"
)

// ReportList returns all stored reports. Reports are not scoped to a
// single owner, so any authenticated caller may read them.
//
//	@Summary		List reports
//	@Description	Returns all stored reports, newest first
//	@Tags			reports
//	@Produce		json
//	@Success		200	{object}	models.APIResponse{data=[]models.Report}
//	@Failure		401	{object}	models.APIResponse
//	@Router			/api/v1/reports [get]
func (h *Handler) ReportList(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)

	if !h.authorizeShared(w, r, lang) {
		return
	}

	start := time.Now()
	reports, err := h.db.ListReports(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, reports, i18n.Get(lang, "Success_ReportList"), time.Since(start))
}

// ReportsByAnalysis returns the reports generated for one analysis.
//
//	@Summary		List reports by analysis
//	@Description	Returns the reports generated for an analysis
//	@Tags			reports
//	@Produce		json
//	@Param			analysisId	path		int	true	"Analysis ID"
//	@Success		200			{object}	models.APIResponse{data=[]models.Report}
//	@Failure		401			{object}	models.APIResponse
//	@Router			/api/v1/reports/by-analysis/{analysisId} [get]
func (h *Handler) ReportsByAnalysis(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)

	analysisID, err := pathIntParam(r, "analysisId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
		return
	}

	if !h.authorizeShared(w, r, lang) {
		return
	}

	start := time.Now()
	reports, err := h.db.ListReportsByAnalysis(r.Context(), analysisID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, reports, i18n.Get(lang, "Success_ReportList"), time.Since(start))
}

// ReportsByDate returns the reports generated on one calendar day.
// The date parameter uses the YYYY-MM-DD form; time components of the
// stored generation date are ignored.
//
//	@Summary		List reports by date
//	@Description	Returns the reports generated on a calendar day (YYYY-MM-DD)
//	@Tags			reports
//	@Produce		json
//	@Param			date	path		string	true	"Generation date (YYYY-MM-DD)"
//	@Success		200		{object}	models.APIResponse{data=[]models.Report}
//	@Failure		400		{object}	models.APIResponse
//	@Failure		401		{object}	models.APIResponse
//	@Router			/api/v1/reports/by-date/{date} [get]
func (h *Handler) ReportsByDate(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)

	day, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "date must use the YYYY-MM-DD format", nil)
		return
	}

	if !h.authorizeShared(w, r, lang) {
		return
	}

	start := time.Now()
	reports, err := h.db.ListReportsByDate(r.Context(), day)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, reports, i18n.Get(lang, "Success_ReportList"), time.Since(start))
}

// ReportsByFormat returns the reports with the given file format. The
// format name is matched case-insensitively.
//
//	@Summary		List reports by format
//	@Description	Returns the reports with the given file format (pdf, html, json, excel)
//	@Tags			reports
//	@Produce		json
//	@Param			format	path		string	true	"Report format"
//	@Success		200		{object}	models.APIResponse{data=[]models.Report}
//	@Failure		400		{object}	models.APIResponse
//	@Failure		401		{object}	models.APIResponse
//	@Router			/api/v1/reports/by-format/{format} [get]
func (h *Handler) ReportsByFormat(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)

	format, err := models.ParseFormat(chi.URLParam(r, "format"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "format must be one of: pdf, html, json, excel", nil)
		return
	}

	if !h.authorizeShared(w, r, lang) {
		return
	}

	start := time.Now()
	reports, err := h.db.ListReportsByFormat(r.Context(), format)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	respondSuccess(w, http.StatusOK, reports, i18n.Get(lang, "Success_ReportList"), time.Since(start))
}

// ReportCreate registers a generated report.
//
//	@Summary		Register a report
//	@Description	Registers a generated report's metadata and file path
//	@Tags			reports
//	@Accept			json
//	@Produce		json
//	@Param			request	body		models.CreateReportRequest	true	"Report"
//	@Success		201		{object}	models.APIResponse{data=models.Report}
//	@Failure		400		{object}	models.APIResponse
//	@Failure		401		{object}	models.APIResponse
//	@Router			/api/v1/reports [post]
func (h *Handler) ReportCreate(w http.ResponseWriter, r *http.Request) {
	lang := h.lang(r)
	caller := auth.IdentityFromContext(r.Context())

	const op = authz.OpCreateOwn
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return
	}

	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", i18n.Get(lang, "Error_ValidationFailed"), err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	format, err := models.ParseFormat(req.Format)
	if err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "format must be one of: pdf, html, json, excel", nil)
		return
	}

	start := time.Now()
	report, err := h.db.CreateReport(r.Context(), req.AnalysisID, format, req.FilePath, req.GenerationDate)
	if err != nil {
		metrics.RecordReportGenerated(format.String(), "error", time.Since(start))
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	metrics.RecordReportGenerated(format.String(), "success", time.Since(start))
	if err := h.db.RefreshReportGauges(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to refresh report gauges")
	}

	logging.Ctx(r.Context()).Info().
		Int("report_id", report.ID).
		Int("analysis_id", report.AnalysisID).
		Str("format", format.String()).
		Msg("Report registered")
	respondSuccess(w, http.StatusCreated, report, i18n.Get(lang, "Success_ReportCreated"), time.Since(start))
}

// ReportDelete removes one report by ID.
//
//	@Summary		Delete a report
//	@Description	Deletes one report by ID
//	@Tags			reports
//	@Produce		json
//	@Param			id	path		int	true	"Report ID"
//	@Success		200	{object}	models.APIResponse
//	@Failure		401	{object}	models.APIResponse
//	@Failure		404	{object}	models.APIResponse
//	@Router			/api/v1/reports/{id} [delete]
func (h *Handler) ReportDelete(w http.ResponseWriter, r *http.Request) {
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
	if err := h.db.DeleteReport(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", i18n.Get(lang, "Error_ReportNotFound"), nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	if err := h.db.RefreshReportGauges(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to refresh report gauges")
	}
	respondSuccess(w, http.StatusOK, nil, i18n.Get(lang, "Success_ReportDeleted"), time.Since(start))
}

// ReportDeleteAll removes every stored report.
//
//	@Summary		Delete all reports
//	@Description	Deletes every stored report
//	@Tags			reports
//	@Produce		json
//	@Success		200	{object}	models.APIResponse
//	@Failure		401	{object}	models.APIResponse
//	@Router			/api/v1/reports [delete]
func (h *Handler) ReportDeleteAll(w http.ResponseWriter, r *http.Request) {
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
	deleted, err := h.db.DeleteAllReports(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "DATABASE_ERROR", i18n.Get(lang, "Error_InternalServer"), err)
		return
	}

	if err := h.db.RefreshReportGauges(r.Context()); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Failed to refresh report gauges")
	}

	logging.Ctx(r.Context()).Info().
		Int("caller_id", caller.UserID).
		Int64("deleted", deleted).
		Msg("All reports deleted")
	respondSuccess(w, http.StatusOK, map[string]int64{"deleted": deleted}, i18n.Get(lang, "Success_AllReportsDeleted"), time.Since(start))
}

// authorizeShared runs the shared-read authorization check and writes
// the error response on rejection. Returns true when the request may
// proceed.
func (h *Handler) authorizeShared(w http.ResponseWriter, r *http.Request, lang string) bool {
	caller := auth.IdentityFromContext(r.Context())

	const op = authz.OpReadShared
	decision := authz.Authorize(caller, 0, op)
	metrics.RecordAuthzDecision(op.String(), decision.String())
	if decision != authz.DecisionAllow {
		respondDecision(w, decision, lang)
		return false
	}
	return true
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bobmcallan/vitae/internal/common"
	"github.com/bobmcallan/vitae/internal/models"
)

const (
	msgReportFieldsRequired = "Please provide all required fields: height, weight, age, and gender."
	msgReportNotFound       = "Report not found."
	msgReportForbidden      = "Not authorized to view this report."
	msgInvalidFormat        = `Invalid format specified. Use "pdf" or "txt".`
)

// writeReportError maps report service errors onto HTTP responses.
func (s *Server) writeReportError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, http.StatusNotFound, msgReportNotFound)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, http.StatusUnauthorized, msgReportForbidden)
	case errors.Is(err, models.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrGeneration):
		s.logger.Warn().Err(err).Msg("Report generation failed")
		WriteError(w, http.StatusBadGateway, "Failed to generate health report. Please try again later.")
	default:
		s.logger.Error().Err(err).Msg(fallback)
		WriteError(w, http.StatusInternalServerError, fallback)
	}
}

// handleReportGenerate handles POST /api/reports/generate.
func (s *Server) handleReportGenerate(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	req.Gender = strings.ToLower(strings.TrimSpace(req.Gender))

	if req.Height == 0 || req.Weight == 0 || req.Age == 0 || req.Gender == "" {
		WriteError(w, http.StatusBadRequest, msgReportFieldsRequired)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid value for: "+strings.Join(validationFields(err), ", "))
		return
	}

	user := common.UserFromContext(r.Context())
	report, err := s.app.ReportService.Generate(r.Context(), user.UserID, req)
	if err != nil {
		s.writeReportError(w, err, "Server error while generating report.")
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Health report generated successfully.",
		"data":    report,
	})
}

// handleReportHistory handles GET /api/reports/history.
func (s *Server) handleReportHistory(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	reports, err := s.app.ReportService.History(r.Context(), user.UserID)
	if err != nil {
		s.writeReportError(w, err, "Server error while fetching report history.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(reports),
		"data":    reports,
	})
}

// handleReportGet handles GET /api/reports/{id}.
func (s *Server) handleReportGet(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	report, err := s.app.ReportService.Get(r.Context(), user.UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeReportError(w, err, "Server error while fetching report.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    report,
	})
}

// handleReportView handles GET /api/reports/{id}/view.
func (s *Server) handleReportView(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	view, err := s.app.ReportService.View(r.Context(), user.UserID, chi.URLParam(r, "id"))
	if err != nil {
		s.writeReportError(w, err, "Server error while fetching report.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    view,
	})
}

// handleReportUpdate handles PATCH /api/reports/{id}.
func (s *Server) handleReportUpdate(w http.ResponseWriter, r *http.Request) {
	var update models.ReportUpdate
	if !DecodeJSON(w, r, &update) {
		return
	}

	user := common.UserFromContext(r.Context())
	report, err := s.app.ReportService.Update(r.Context(), user.UserID, chi.URLParam(r, "id"), update)
	if err != nil {
		s.writeReportError(w, err, "Server error while updating report.")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Report updated successfully.",
		"data":    report,
	})
}

// handleReportDownload handles GET /api/reports/download/{id}/{format}.
func (s *Server) handleReportDownload(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	export, err := s.app.ReportService.Export(r.Context(), user.UserID, chi.URLParam(r, "id"), chi.URLParam(r, "format"))
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			WriteError(w, http.StatusBadRequest, msgInvalidFormat)
			return
		}
		s.writeReportError(w, err, "Server error while downloading report.")
		return
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", export.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(export.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(export.Data)
}

// handleReportChart handles GET /api/reports/chart.
func (s *Server) handleReportChart(w http.ResponseWriter, r *http.Request) {
	user := common.UserFromContext(r.Context())
	png, err := s.app.ReportService.Chart(r.Context(), user.UserID)
	if err != nil {
		if errors.Is(err, models.ErrInvalidInput) {
			WriteError(w, http.StatusBadRequest, "At least two reports are needed to chart progress.")
			return
		}
		s.writeReportError(w, err, "Server error while rendering chart.")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

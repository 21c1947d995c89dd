// -----------------------------------------------------------------------
// Export Handler - streams job results and failures in CSV, JSON, or XLSX
// -----------------------------------------------------------------------

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/services/export"
)

// ExportHandler handles result and failure download requests
type ExportHandler struct {
	jobs     interfaces.JobStorage
	carriers interfaces.CarrierStorage
	failures interfaces.FailureStorage
	logger   arbor.ILogger
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(
	jobs interfaces.JobStorage,
	carriers interfaces.CarrierStorage,
	failures interfaces.FailureStorage,
	logger arbor.ILogger,
) *ExportHandler {
	return &ExportHandler{
		jobs:     jobs,
		carriers: carriers,
		failures: failures,
		logger:   logger,
	}
}

// ResultsHandler handles GET /api/jobs/{id}/results?format=csv|json|xlsx.
// Results from partially complete jobs are exportable; format defaults to csv.
func (h *ExportHandler) ResultsHandler(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if !h.jobExists(w, r, jobID) {
		return
	}

	records, err := h.carriers.GetCarriersByJob(r.Context(), jobID)
	if err != nil {
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to load carrier records")
		WriteError(w, http.StatusInternalServerError, "Failed to load results")
		return
	}
	if len(records) == 0 {
		WriteError(w, http.StatusNotFound, "No results found for job: "+jobID)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		h.setDownloadHeaders(w, "text/csv", export.Filename("carriers", jobID, "csv", time.Now()))
		err = export.WriteCSV(w, records)
	case "json":
		w.Header().Set("Content-Type", "application/json")
		err = export.WriteJSON(w, records)
	case "xlsx":
		h.setDownloadHeaders(w,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			export.Filename("carriers", jobID, "xlsx", time.Now()))
		err = export.WriteXLSX(w, records)
	default:
		WriteError(w, http.StatusBadRequest, "Unsupported format: "+format)
		return
	}

	if err != nil {
		// Headers are already sent; log and abandon the response
		h.logger.Error().Err(err).Str("job_id", jobID).Str("format", format).Msg("Export write failed")
		return
	}

	h.logger.Info().
		Str("job_id", jobID).
		Str("format", format).
		Int("records", len(records)).
		Msg("Exported job results")
}

// FailuresHandler handles GET /api/jobs/{id}/failures?format=csv|json
func (h *ExportHandler) FailuresHandler(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}
	if !h.jobExists(w, r, jobID) {
		return
	}

	failures, err := h.failures.GetFailuresByJob(r.Context(), jobID)
	if err != nil {
		h.logger.Error().Err(err).Str("job_id", jobID).Msg("Failed to load extraction failures")
		WriteError(w, http.StatusInternalServerError, "Failed to load failures")
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	switch format {
	case "csv":
		h.setDownloadHeaders(w, "text/csv", export.Filename("failures", jobID, "csv", time.Now()))
		err = export.WriteFailuresCSV(w, failures)
	case "json":
		w.Header().Set("Content-Type", "application/json")
		err = export.WriteFailuresJSON(w, failures)
	default:
		WriteError(w, http.StatusBadRequest, "Unsupported format: "+format)
		return
	}

	if err != nil {
		h.logger.Error().Err(err).Str("job_id", jobID).Str("format", format).Msg("Export write failed")
	}
}

func (h *ExportHandler) jobExists(w http.ResponseWriter, r *http.Request, jobID string) bool {
	_, err := h.jobs.GetJob(r.Context(), jobID)
	if err == nil {
		return true
	}
	if errors.Is(err, interfaces.ErrJobNotFound) {
		WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
		return false
	}
	h.logger.Error().Err(err).Str("job_id", jobID).Msg("Job lookup failed")
	WriteError(w, http.StatusInternalServerError, "Failed to load job")
	return false
}

func (h *ExportHandler) setDownloadHeaders(w http.ResponseWriter, contentType, filename string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

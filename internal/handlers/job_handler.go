// -----------------------------------------------------------------------
// Job Handler - extraction job status, history, results and cancellation
// -----------------------------------------------------------------------

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/models"
)

const defaultJobListLimit = 50

// JobHandler handles HTTP requests for extraction job lifecycle
type JobHandler struct {
	jobs     interfaces.JobStorage
	carriers interfaces.CarrierStorage
	failures interfaces.FailureStorage
	starter  interfaces.JobStarter
	logger   arbor.ILogger
}

// NewJobHandler creates a new JobHandler
func NewJobHandler(
	jobs interfaces.JobStorage,
	carriers interfaces.CarrierStorage,
	failures interfaces.FailureStorage,
	starter interfaces.JobStarter,
	logger arbor.ILogger,
) *JobHandler {
	return &JobHandler{
		jobs:     jobs,
		carriers: carriers,
		failures: failures,
		starter:  starter,
		logger:   logger,
	}
}

// jobResponse is the external job status payload
type jobResponse struct {
	JobID       string     `json:"job_id"`
	Status      string     `json:"status"`
	Total       int        `json:"total"`
	Processed   int        `json:"processed"`
	Failed      int        `json:"failed"`
	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}

func newJobResponse(job *models.ExtractionJob) jobResponse {
	return jobResponse{
		JobID:       job.ID,
		Status:      string(job.Status),
		Total:       job.Total,
		Processed:   job.ProcessedCount,
		Failed:      job.FailedCount,
		CreatedAt:   job.CreatedAt,
		CompletedAt: job.CompletedAt,
		Error:       job.ErrorMessage,
	}
}

// GetJobHandler handles GET /api/jobs/{id}
func (h *JobHandler) GetJobHandler(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		h.writeJobError(w, jobID, err)
		return
	}

	WriteJSON(w, http.StatusOK, newJobResponse(job))
}

// ListJobsHandler handles GET /api/jobs, newest first
func (h *JobHandler) ListJobsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	limit := GetLimitParam(r, defaultJobListLimit, 500)
	jobs, err := h.jobs.ListJobs(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to list extraction jobs")
		WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	responses := make([]jobResponse, 0, len(jobs))
	for _, job := range jobs {
		responses = append(responses, newJobResponse(job))
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  responses,
		"count": len(responses),
	})
}

// CancelJobHandler handles POST /api/jobs/{id}/cancel
func (h *JobHandler) CancelJobHandler(w http.ResponseWriter, r *http.Request, jobID string) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	job, err := h.jobs.GetJob(r.Context(), jobID)
	if err != nil {
		h.writeJobError(w, jobID, err)
		return
	}

	if job.IsTerminal() {
		WriteError(w, http.StatusConflict, "Job has already finished")
		return
	}

	if !h.starter.Cancel(jobID) {
		// Job exists but is not in the running set: it finished between the
		// status read and the cancel request, or the process restarted.
		WriteError(w, http.StatusConflict, "Job is not running")
		return
	}

	h.logger.Info().Str("job_id", jobID).Msg("Job cancellation requested")
	WriteJSON(w, http.StatusOK, map[string]string{
		"job_id": jobID,
		"status": "cancelling",
	})
}

func (h *JobHandler) writeJobError(w http.ResponseWriter, jobID string, err error) {
	if errors.Is(err, interfaces.ErrJobNotFound) {
		WriteError(w, http.StatusNotFound, "Job not found: "+jobID)
		return
	}
	h.logger.Error().Err(err).Str("job_id", jobID).Msg("Job lookup failed")
	WriteError(w, http.StatusInternalServerError, "Failed to load job")
}

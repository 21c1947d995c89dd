package handlers

import (
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/common"
	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/models"
	"github.com/potlucy73-hue/carriervet/internal/services/extraction"
)

// StatusHandler handles HTTP requests for application status
type StatusHandler struct {
	jobs      interfaces.JobStorage
	registry  *extraction.Registry
	startedAt time.Time
	logger    arbor.ILogger
}

// NewStatusHandler creates a new StatusHandler
func NewStatusHandler(jobs interfaces.JobStorage, registry *extraction.Registry, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{
		jobs:      jobs,
		registry:  registry,
		startedAt: time.Now(),
		logger:    logger,
	}
}

// GetStatusHandler handles GET /api/status
func (h *StatusHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	totals := make(map[string]int)
	for _, status := range []models.JobStatus{
		models.JobStatusProcessing,
		models.JobStatusCompleted,
		models.JobStatusFailed,
		models.JobStatusCancelled,
	} {
		count, err := h.jobs.CountJobsByStatus(r.Context(), status)
		if err != nil {
			h.logger.Error().Err(err).Str("status", string(status)).Msg("Failed to count jobs")
			WriteError(w, http.StatusInternalServerError, "Failed to read job totals")
			return
		}
		totals[string(status)] = count
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":        common.GetVersion(),
		"uptime_seconds": int(time.Since(h.startedAt).Seconds()),
		"active_jobs":    h.registry.Count(),
		"job_totals":     totals,
	})
}

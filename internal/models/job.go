// -----------------------------------------------------------------------
// Extraction Job - durable job state for bulk carrier extraction runs
// -----------------------------------------------------------------------

package models

import (
	"time"
)

// JobStatus represents the state of an extraction job
type JobStatus string

const (
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusCancelled  JobStatus = "cancelled"
)

// ExtractionJob tracks one bulk extraction run over an ordered list of MC
// numbers. The orchestrator is the only writer; status transitions are
// monotonic (once terminal, never changed) and progress counters never
// decrease.
type ExtractionJob struct {
	ID             string     `json:"job_id" badgerhold:"key"`
	Status         JobStatus  `json:"status"`
	Total          int        `json:"total_mc_numbers"`
	ProcessedCount int        `json:"processed_count"`
	FailedCount    int        `json:"failed_count"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	ErrorMessage   string     `json:"error_message,omitempty"`
}

// NewExtractionJob creates a job in the processing state with zeroed counters.
func NewExtractionJob(jobID string, total int) *ExtractionJob {
	return &ExtractionJob{
		ID:        jobID,
		Status:    JobStatusProcessing,
		Total:     total,
		CreatedAt: time.Now(),
	}
}

// IsTerminal returns true if the job has reached a terminal state
func (j *ExtractionJob) IsTerminal() bool {
	return j.Status == JobStatusCompleted ||
		j.Status == JobStatusFailed ||
		j.Status == JobStatusCancelled
}

// MarkCompleted marks the job as completed
func (j *ExtractionJob) MarkCompleted() {
	j.Status = JobStatusCompleted
	j.setCompletedAt()
}

// MarkFailed marks the job as failed with an error message
func (j *ExtractionJob) MarkFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.ErrorMessage = errorMsg
	j.setCompletedAt()
}

// MarkCancelled marks the job as cancelled
func (j *ExtractionJob) MarkCancelled() {
	j.Status = JobStatusCancelled
	j.setCompletedAt()
}

// setCompletedAt stamps the terminal timestamp exactly once.
func (j *ExtractionJob) setCompletedAt() {
	if j.CompletedAt == nil {
		now := time.Now()
		j.CompletedAt = &now
	}
}

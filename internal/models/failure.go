package models

import (
	"time"
)

// FailedExtraction records one MC number that exhausted its retries. One row
// exists per permanently-failed identifier; rows are immutable once saved.
type FailedExtraction struct {
	Key         string    `json:"-" badgerhold:"key"` // jobID|seq, assigned by storage
	JobID       string    `json:"job_id" badgerhold:"index"`
	Seq         int       `json:"-"`
	MCNumber    string    `json:"mc_number"`
	ErrorReason string    `json:"error_reason"`
	RetryCount  int       `json:"retry_count"`
	FailedAt    time.Time `json:"failed_at"`
}

// -----------------------------------------------------------------------
// Storage interfaces - durable persistence for jobs, carriers, failures
// -----------------------------------------------------------------------

package interfaces

import (
	"context"
	"errors"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

// ErrJobNotFound is returned when a job ID does not exist in storage
var ErrJobNotFound = errors.New("job not found")

// JobStorage - interface for extraction job persistence
type JobStorage interface {
	CreateJob(ctx context.Context, job *models.ExtractionJob) error
	GetJob(ctx context.Context, jobID string) (*models.ExtractionJob, error)

	// UpdateProgress overwrites the progress counters for a running job.
	UpdateProgress(ctx context.Context, jobID string, processed, failed int) error

	// UpdateStatus transitions the job status. CompletedAt is stamped the
	// first time a terminal status is written. Terminal states are never
	// overwritten.
	UpdateStatus(ctx context.Context, jobID string, status models.JobStatus, errorMsg string) error

	ListJobs(ctx context.Context, limit int) ([]*models.ExtractionJob, error)
	CountJobsByStatus(ctx context.Context, status models.JobStatus) (int, error)
}

// CarrierStorage - interface for enriched carrier record persistence
type CarrierStorage interface {
	// SaveCarrier persists one enriched record. Saves are idempotent per
	// (job, seq) so a replayed write never duplicates a row.
	SaveCarrier(ctx context.Context, record *models.CarrierRecord) error

	// GetCarriersByJob returns records in input-list order.
	GetCarriersByJob(ctx context.Context, jobID string) ([]*models.CarrierRecord, error)
	CountCarriersByJob(ctx context.Context, jobID string) (int, error)
}

// FailureStorage - interface for terminal extraction failure persistence
type FailureStorage interface {
	SaveFailure(ctx context.Context, failure *models.FailedExtraction) error

	// GetFailuresByJob returns failures in input-list order.
	GetFailuresByJob(ctx context.Context, jobID string) ([]*models.FailedExtraction, error)
}

package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/models"
)

// JobStorage implements the JobStorage interface for Badger
type JobStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewJobStorage creates a new JobStorage instance
func NewJobStorage(db *BadgerDB, logger arbor.ILogger) interfaces.JobStorage {
	return &JobStorage{
		db:     db,
		logger: logger,
	}
}

func (s *JobStorage) CreateJob(ctx context.Context, job *models.ExtractionJob) error {
	if job.ID == "" {
		return fmt.Errorf("job ID is required")
	}

	if err := s.db.Store().Insert(job.ID, job); err != nil {
		if err == badgerhold.ErrKeyExists {
			return fmt.Errorf("job already exists: %s", job.ID)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}

	s.logger.Debug().Str("job_id", job.ID).Int("total", job.Total).Msg("Created extraction job")
	return nil
}

func (s *JobStorage) GetJob(ctx context.Context, jobID string) (*models.ExtractionJob, error) {
	var job models.ExtractionJob
	if err := s.db.Store().Get(jobID, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, interfaces.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

func (s *JobStorage) UpdateProgress(ctx context.Context, jobID string, processed, failed int) error {
	var job models.ExtractionJob
	if err := s.db.Store().Get(jobID, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return interfaces.ErrJobNotFound
		}
		return fmt.Errorf("failed to get job: %w", err)
	}

	job.ProcessedCount = processed
	job.FailedCount = failed

	if err := s.db.Store().Update(jobID, &job); err != nil {
		return fmt.Errorf("failed to update job progress: %w", err)
	}
	return nil
}

func (s *JobStorage) UpdateStatus(ctx context.Context, jobID string, status models.JobStatus, errorMsg string) error {
	var job models.ExtractionJob
	if err := s.db.Store().Get(jobID, &job); err != nil {
		if err == badgerhold.ErrNotFound {
			return interfaces.ErrJobNotFound
		}
		return fmt.Errorf("failed to get job: %w", err)
	}

	// Terminal states are monotonic
	if job.IsTerminal() {
		s.logger.Warn().
			Str("job_id", jobID).
			Str("status", string(job.Status)).
			Str("requested", string(status)).
			Msg("Ignoring status update for terminal job")
		return nil
	}

	job.Status = status
	if errorMsg != "" {
		job.ErrorMessage = errorMsg
	}
	if job.IsTerminal() && job.CompletedAt == nil {
		now := time.Now()
		job.CompletedAt = &now
	}

	if err := s.db.Store().Update(jobID, &job); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	s.logger.Debug().Str("job_id", jobID).Str("status", string(status)).Msg("Updated job status")
	return nil
}

func (s *JobStorage) ListJobs(ctx context.Context, limit int) ([]*models.ExtractionJob, error) {
	query := badgerhold.Where("ID").Ne("").SortBy("CreatedAt").Reverse()
	if limit > 0 {
		query = query.Limit(limit)
	}

	var jobs []models.ExtractionJob
	if err := s.db.Store().Find(&jobs, query); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	result := make([]*models.ExtractionJob, len(jobs))
	for i := range jobs {
		result[i] = &jobs[i]
	}
	return result, nil
}

func (s *JobStorage) CountJobsByStatus(ctx context.Context, status models.JobStatus) (int, error) {
	count, err := s.db.Store().Count(&models.ExtractionJob{}, badgerhold.Where("Status").Eq(status))
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return int(count), nil
}

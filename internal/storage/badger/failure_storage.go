package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/models"
)

// FailureStorage implements the FailureStorage interface for Badger
type FailureStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFailureStorage creates a new FailureStorage instance
func NewFailureStorage(db *BadgerDB, logger arbor.ILogger) interfaces.FailureStorage {
	return &FailureStorage{
		db:     db,
		logger: logger,
	}
}

func (s *FailureStorage) SaveFailure(ctx context.Context, failure *models.FailedExtraction) error {
	if failure.JobID == "" {
		return fmt.Errorf("job ID is required")
	}

	failure.Key = recordKey(failure.JobID, failure.Seq)
	if err := s.db.Store().Upsert(failure.Key, failure); err != nil {
		return fmt.Errorf("failed to save failed extraction: %w", err)
	}

	s.logger.Debug().
		Str("job_id", failure.JobID).
		Str("mc_number", failure.MCNumber).
		Str("reason", failure.ErrorReason).
		Msg("Saved failed extraction")
	return nil
}

func (s *FailureStorage) GetFailuresByJob(ctx context.Context, jobID string) ([]*models.FailedExtraction, error) {
	var failures []models.FailedExtraction
	if err := s.db.Store().Find(&failures, badgerhold.Where("JobID").Eq(jobID).Index("JobID").SortBy("Seq")); err != nil {
		return nil, fmt.Errorf("failed to get failed extractions: %w", err)
	}

	result := make([]*models.FailedExtraction, len(failures))
	for i := range failures {
		result[i] = &failures[i]
	}
	return result, nil
}

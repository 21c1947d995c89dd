package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/models"
)

// recordKey builds the composite key for per-job rows. The zero-padded
// sequence keeps keys sortable and makes saves idempotent per (job, seq).
func recordKey(jobID string, seq int) string {
	return fmt.Sprintf("%s|%08d", jobID, seq)
}

// CarrierStorage implements the CarrierStorage interface for Badger
type CarrierStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCarrierStorage creates a new CarrierStorage instance
func NewCarrierStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CarrierStorage {
	return &CarrierStorage{
		db:     db,
		logger: logger,
	}
}

func (s *CarrierStorage) SaveCarrier(ctx context.Context, record *models.CarrierRecord) error {
	if record.JobID == "" {
		return fmt.Errorf("job ID is required")
	}
	if record.MCNumber == "" {
		return fmt.Errorf("MC number is required")
	}

	record.Key = recordKey(record.JobID, record.Seq)
	if err := s.db.Store().Upsert(record.Key, record); err != nil {
		return fmt.Errorf("failed to save carrier record: %w", err)
	}

	s.logger.Debug().
		Str("job_id", record.JobID).
		Str("mc_number", record.MCNumber).
		Msg("Saved carrier record")
	return nil
}

func (s *CarrierStorage) GetCarriersByJob(ctx context.Context, jobID string) ([]*models.CarrierRecord, error) {
	var records []models.CarrierRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("JobID").Eq(jobID).Index("JobID").SortBy("Seq")); err != nil {
		return nil, fmt.Errorf("failed to get carrier records: %w", err)
	}

	result := make([]*models.CarrierRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

func (s *CarrierStorage) CountCarriersByJob(ctx context.Context, jobID string) (int, error) {
	count, err := s.db.Store().Count(&models.CarrierRecord{}, badgerhold.Where("JobID").Eq(jobID).Index("JobID"))
	if err != nil {
		return 0, fmt.Errorf("failed to count carrier records: %w", err)
	}
	return int(count), nil
}

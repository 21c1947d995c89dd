package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

func failedExtraction(jobID string, seq int, mc string) *models.FailedExtraction {
	return &models.FailedExtraction{
		JobID:       jobID,
		Seq:         seq,
		MCNumber:    mc,
		ErrorReason: "carrier not found (after 3 retries)",
		RetryCount:  3,
		FailedAt:    time.Now(),
	}
}

func TestFailureSaveAndGetByJob(t *testing.T) {
	db := newTestDB(t)
	storage := NewFailureStorage(db, arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.SaveFailure(ctx, failedExtraction("job_1", 3, "444")))
	require.NoError(t, storage.SaveFailure(ctx, failedExtraction("job_1", 1, "222")))
	require.NoError(t, storage.SaveFailure(ctx, failedExtraction("job_2", 0, "999")))

	failures, err := storage.GetFailuresByJob(ctx, "job_1")
	require.NoError(t, err)
	require.Len(t, failures, 2)
	assert.Equal(t, "222", failures[0].MCNumber)
	assert.Equal(t, "444", failures[1].MCNumber)
	assert.Equal(t, 3, failures[0].RetryCount)
	assert.Equal(t, "carrier not found (after 3 retries)", failures[0].ErrorReason)
}

func TestFailureSaveIdempotentPerSeq(t *testing.T) {
	db := newTestDB(t)
	storage := NewFailureStorage(db, arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, storage.SaveFailure(ctx, failedExtraction("job_1", 0, "111")))
	require.NoError(t, storage.SaveFailure(ctx, failedExtraction("job_1", 0, "111")))

	failures, err := storage.GetFailuresByJob(ctx, "job_1")
	require.NoError(t, err)
	assert.Len(t, failures, 1)
}

func TestFailureSaveRequiresJobID(t *testing.T) {
	db := newTestDB(t)
	storage := NewFailureStorage(db, arbor.NewLogger())

	assert.Error(t, storage.SaveFailure(context.Background(), failedExtraction("", 0, "111")))
}

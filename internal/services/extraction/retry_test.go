package extraction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func fastPolicy(maxRetries int) *RetryPolicy {
	return &RetryPolicy{MaxRetries: maxRetries, BaseDelay: time.Millisecond}
}

func TestExecuteSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Execute(context.Background(), arbor.NewLogger(), "123", func() error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestExecuteSucceedsAfterRetries(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Execute(context.Background(), arbor.NewLogger(), "123", func() error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecuteExhaustsRetries(t *testing.T) {
	calls := 0
	lookupErr := errors.New("connection refused")
	err := fastPolicy(3).Execute(context.Background(), arbor.NewLogger(), "123", func() error {
		calls++
		return lookupErr
	})

	// max_retries=3 means 4 total attempts
	assert.Equal(t, 4, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, "123", exhausted.MCNumber)
	assert.Equal(t, 3, exhausted.Retries)
	assert.Equal(t, "connection refused (after 3 retries)", exhausted.Error())
	assert.ErrorIs(t, err, lookupErr)
}

func TestExecuteZeroRetriesSingleAttempt(t *testing.T) {
	calls := 0
	err := fastPolicy(0).Execute(context.Background(), arbor.NewLogger(), "123", func() error {
		calls++
		return errors.New("boom")
	})

	assert.Equal(t, 1, calls)

	var exhausted *ExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 0, exhausted.Retries)
}

func TestExecuteStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := fastPolicy(3).Execute(ctx, arbor.NewLogger(), "123", func() error {
		calls++
		return errors.New("should not run")
	})

	assert.Equal(t, 0, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecuteCancelledDuringBackoff(t *testing.T) {
	policy := &RetryPolicy{MaxRetries: 3, BaseDelay: time.Hour}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- policy.Execute(ctx, arbor.NewLogger(), "123", func() error {
			return errors.New("transient")
		})
	}()

	// Let the first attempt fail and enter backoff, then cancel
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Execute did not return after cancellation")
	}
}

func TestExecutePassesThroughLookupCancellation(t *testing.T) {
	calls := 0
	err := fastPolicy(3).Execute(context.Background(), arbor.NewLogger(), "123", func() error {
		calls++
		return context.Canceled
	})

	// A cancelled lookup is not retried
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, context.Canceled)
}

package extraction

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
)

// RetryPolicy wraps a single-identifier lookup with bounded retries and
// linear backoff: after failed attempt n the policy sleeps n * BaseDelay
// before the next attempt.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
}

// NewRetryPolicy creates the default policy: 3 retries with a 2s base delay,
// giving a 2s/4s/6s backoff progression.
func NewRetryPolicy() *RetryPolicy {
	return &RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  2 * time.Second,
	}
}

// ExhaustedError is the terminal outcome for an identifier whose retries ran
// out. Reason carries the last error annotated with the retry count, in the
// form persisted to the failed-extractions set.
type ExhaustedError struct {
	MCNumber string
	Retries  int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%v (after %d retries)", e.Err, e.Retries)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Execute runs fn up to MaxRetries+1 times. It returns nil on the first
// success, ctx.Err() if the context is cancelled between attempts, and an
// *ExhaustedError once all attempts failed. Every identifier reaches exactly
// one of those outcomes.
func (p *RetryPolicy) Execute(ctx context.Context, logger arbor.ILogger, mcNumber string, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxRetries+1; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, context.Canceled) {
			return lastErr
		}

		if attempt <= p.MaxRetries {
			backoff := time.Duration(attempt) * p.BaseDelay
			logger.Warn().
				Str("mc_number", mcNumber).
				Int("retry", attempt).
				Int("max_retries", p.MaxRetries).
				Dur("backoff", backoff).
				Err(lastErr).
				Msg("Retrying MC number after backoff")

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	logger.Error().
		Str("mc_number", mcNumber).
		Int("max_retries", p.MaxRetries).
		Err(lastErr).
		Msg("All retry attempts exhausted")

	return &ExhaustedError{MCNumber: mcNumber, Retries: p.MaxRetries, Err: lastErr}
}

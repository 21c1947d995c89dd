// -----------------------------------------------------------------------
// Extraction Orchestrator - drives MC numbers through lookup, enrichment,
// and persistence under the job's rate-limit and retry policy
// -----------------------------------------------------------------------

package extraction

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/potlucy73-hue/carriervet/internal/common"
	"github.com/potlucy73-hue/carriervet/internal/interfaces"
	"github.com/potlucy73-hue/carriervet/internal/models"
	"github.com/potlucy73-hue/carriervet/internal/services/enrichment"
)

// Orchestrator owns the extraction job lifecycle. Each job runs as one
// goroutine that processes its MC numbers strictly sequentially; multiple
// jobs run concurrently up to the configured admission limit.
type Orchestrator struct {
	jobs     interfaces.JobStorage
	carriers interfaces.CarrierStorage
	failures interfaces.FailureStorage
	source   interfaces.CarrierSource
	registry *Registry
	policy   *RetryPolicy
	config   common.ExtractionConfig
	logger   arbor.ILogger
	sem      chan struct{}
	wg       sync.WaitGroup
}

// NewOrchestrator creates an orchestrator with its own registry.
func NewOrchestrator(
	config common.ExtractionConfig,
	source interfaces.CarrierSource,
	jobs interfaces.JobStorage,
	carriers interfaces.CarrierStorage,
	failures interfaces.FailureStorage,
	logger arbor.ILogger,
) *Orchestrator {
	maxJobs := config.MaxConcurrentJobs
	if maxJobs < 1 {
		maxJobs = 1
	}

	return &Orchestrator{
		jobs:     jobs,
		carriers: carriers,
		failures: failures,
		source:   source,
		registry: NewRegistry(),
		policy: &RetryPolicy{
			MaxRetries: config.MaxRetries,
			BaseDelay:  config.RetryBaseDelay.Duration(),
		},
		config: config,
		logger: logger,
		sem:    make(chan struct{}, maxJobs),
	}
}

// Registry exposes the liveness registry to the API layer.
func (o *Orchestrator) Registry() *Registry {
	return o.registry
}

// Start persists the job and launches its extraction task. The call is
// fire-and-forget: progress is observable only through storage. A
// persistence failure here aborts synchronously and no task is launched.
func (o *Orchestrator) Start(jobID string, mcNumbers []string) error {
	if len(mcNumbers) == 0 {
		return errors.New("no MC numbers to process")
	}

	job := models.NewExtractionJob(jobID, len(mcNumbers))
	if err := o.jobs.CreateJob(context.Background(), job); err != nil {
		return fmt.Errorf("failed to create extraction job: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	o.registry.Add(jobID, cancel)
	o.wg.Add(1)

	common.SafeGo(o.logger, "extraction:"+jobID, func() {
		defer o.wg.Done()
		defer o.registry.Remove(jobID)
		defer cancel()
		o.run(ctx, jobID, mcNumbers)
	})

	o.logger.Info().
		Str("job_id", jobID).
		Int("total", len(mcNumbers)).
		Msg("Started extraction job")
	return nil
}

// Cancel requests early termination of a running job. The job loop observes
// the cancellation between items and marks the job cancelled.
func (o *Orchestrator) Cancel(jobID string) bool {
	return o.registry.Cancel(jobID)
}

// Wait blocks until all running jobs have finished. Used on shutdown.
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// run executes the job and records its terminal status. Status writes use a
// background context so a cancelled job still lands its terminal state.
func (o *Orchestrator) run(ctx context.Context, jobID string, mcNumbers []string) {
	err := o.process(ctx, jobID, mcNumbers)

	bg := context.Background()
	switch {
	case err == nil:
		if updateErr := o.jobs.UpdateStatus(bg, jobID, models.JobStatusCompleted, ""); updateErr != nil {
			o.logger.Error().Err(updateErr).Str("job_id", jobID).Msg("Failed to mark job completed")
		}
	case errors.Is(err, context.Canceled):
		o.logger.Info().Str("job_id", jobID).Msg("Extraction job cancelled")
		if updateErr := o.jobs.UpdateStatus(bg, jobID, models.JobStatusCancelled, ""); updateErr != nil {
			o.logger.Error().Err(updateErr).Str("job_id", jobID).Msg("Failed to mark job cancelled")
		}
	default:
		o.logger.Error().Err(err).Str("job_id", jobID).Msg("Extraction job failed")
		if updateErr := o.jobs.UpdateStatus(bg, jobID, models.JobStatusFailed, err.Error()); updateErr != nil {
			o.logger.Error().Err(updateErr).Str("job_id", jobID).Msg("Failed to mark job failed")
		}
	}
}

// process iterates the job's MC numbers in order. Item-level failures are
// absorbed into the failed-extractions set; only orchestrator-level
// conditions (cancellation, storage unavailable) propagate as errors.
func (o *Orchestrator) process(ctx context.Context, jobID string, mcNumbers []string) error {
	// Admission control: bound the number of concurrently processing jobs
	// so parallel jobs cannot defeat per-job pacing against the source.
	select {
	case o.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-o.sem }()

	pacer := NewPacer(o.config.RequestsPerMinute)
	processed := 0
	failed := 0

	for seq, mcNumber := range mcNumbers {
		if err := ctx.Err(); err != nil {
			return err
		}

		// No spacing before the first item; Pacer handles that internally
		if err := pacer.Wait(ctx); err != nil {
			return err
		}

		itemErr := o.policy.Execute(ctx, o.logger, mcNumber, func() error {
			return o.extractOne(ctx, jobID, seq, mcNumber)
		})

		switch {
		case itemErr == nil:
			processed++
			o.logger.Info().
				Str("job_id", jobID).
				Str("mc_number", mcNumber).
				Msg("Successfully extracted MC number")

		case errors.Is(itemErr, context.Canceled):
			return itemErr

		default:
			var exhausted *ExhaustedError
			if !errors.As(itemErr, &exhausted) {
				// Retry policy only returns nil, cancellation, or exhaustion
				return fmt.Errorf("unexpected extraction error for MC %s: %w", mcNumber, itemErr)
			}

			failure := &models.FailedExtraction{
				JobID:       jobID,
				Seq:         seq,
				MCNumber:    mcNumber,
				ErrorReason: exhausted.Error(),
				RetryCount:  exhausted.Retries,
				FailedAt:    time.Now(),
			}
			if err := o.failures.SaveFailure(ctx, failure); err != nil {
				return fmt.Errorf("failed to record extraction failure: %w", err)
			}
			failed++
		}

		if err := o.jobs.UpdateProgress(ctx, jobID, processed, failed); err != nil {
			return fmt.Errorf("failed to update job progress: %w", err)
		}
	}

	o.logger.Info().
		Str("job_id", jobID).
		Int("processed", processed).
		Int("failed", failed).
		Msg("Extraction job finished processing")
	return nil
}

// extractOne performs one attempt for one MC number: lookup, boundary
// validation, enrichment, persistence. Any returned error is retryable.
func (o *Orchestrator) extractOne(ctx context.Context, jobID string, seq int, mcNumber string) error {
	lookupCtx, cancel := context.WithTimeout(ctx, o.config.RequestTimeout.Duration())
	defer cancel()

	snapshot, err := o.source.Lookup(lookupCtx, mcNumber)
	if err != nil {
		return err
	}
	if snapshot == nil {
		return errors.New("no data returned from source")
	}

	if err := snapshot.Validate(); err != nil {
		return err
	}
	if snapshot.CompanyName == "" {
		o.logger.Warn().
			Str("job_id", jobID).
			Str("mc_number", mcNumber).
			Msg("Carrier snapshot missing company name")
	}

	record := enrichment.Enrich(snapshot, time.Now())
	record.JobID = jobID
	record.Seq = seq

	return o.carriers.SaveCarrier(ctx, record)
}

package extraction

import (
	"context"
	"sync"
	"time"
)

// Pacer enforces a minimum spacing between the start of consecutive lookups
// within a single job. This is advisory pacing, not a token bucket: it does
// not account for how long the request itself took, so effective throughput
// may be lower than the configured rate but never higher in steady state.
type Pacer struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
}

// NewPacer creates a pacer spacing requests at 60/requestsPerMinute seconds.
func NewPacer(requestsPerMinute int) *Pacer {
	if requestsPerMinute < 1 {
		requestsPerMinute = 1
	}
	return &Pacer{
		interval: time.Minute / time.Duration(requestsPerMinute),
	}
}

// Wait blocks until the spacing from the previous call is satisfied. The
// first call returns immediately. The wait is cancelled by the context.
func (p *Pacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		nextAllowed := p.last.Add(p.interval)
		if wait := time.Until(nextAllowed); wait > 0 {
			timer := time.NewTimer(wait)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	p.last = time.Now()
	return nil
}

// Interval returns the configured minimum spacing.
func (p *Pacer) Interval() time.Duration {
	return p.interval
}

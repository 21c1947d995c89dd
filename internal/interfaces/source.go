package interfaces

import (
	"context"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

// CarrierSource resolves one MC number to a raw carrier snapshot. The
// orchestrator depends only on this boundary; whether the implementation
// scrapes HTML or calls a hosted API is irrelevant to it. Lookup must honor
// context cancellation and deadline.
type CarrierSource interface {
	Lookup(ctx context.Context, mcNumber string) (*models.CarrierSnapshot, error)
}

// JobStarter launches extraction jobs. Implemented by the extraction
// orchestrator; handlers depend on this so they can be tested without one.
type JobStarter interface {
	Start(jobID string, mcNumbers []string) error
	Cancel(jobID string) bool
}

package fmcsa

import (
	"fmt"
)

// NotFoundError indicates the MC number has no carrier on record.
type NotFoundError struct {
	MCNumber string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("MC %s not found", e.MCNumber)
}

// LookupError indicates the carrier search responded with a non-success
// status code.
type LookupError struct {
	MCNumber   string
	StatusCode int
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("carrier search for MC %s failed with status %d", e.MCNumber, e.StatusCode)
}

// -----------------------------------------------------------------------
// Carrier Data - raw lookup snapshots and enriched carrier records
// -----------------------------------------------------------------------

package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RiskLevel is the derived three-tier risk classification
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "Low"
	RiskLevelMedium RiskLevel = "Medium"
	RiskLevelHigh   RiskLevel = "High"
)

// Authority status values produced by enrichment normalization
const (
	AuthorityStatusActive    = "Active"
	AuthorityStatusInactive  = "Inactive"
	AuthorityStatusSuspended = "Suspended"
	AuthorityStatusUnknown   = "Unknown"
)

// CarrierSnapshot is the raw record returned by a carrier data source for
// one MC number, before enrichment. Sources return loosely-shaped data;
// absent string fields stay empty and absent counts stay zero.
type CarrierSnapshot struct {
	MCNumber        string `json:"mc_number" validate:"required,max=10"`
	DOTNumber       string `json:"dot_number"`
	CompanyName     string `json:"company_name"`
	AuthorityStatus string `json:"authority_status"`
	AuthorityType   string `json:"authority_type"`
	InsuranceStatus string `json:"insurance_status"`
	InsuranceExpiry string `json:"insurance_expiry"`
	SafetyRating    string `json:"safety_rating"`
	Violations12Mo  int    `json:"violations_12mo" validate:"gte=0"`
	Accidents12Mo   int    `json:"accidents_12mo" validate:"gte=0"`
	AuthorityDate   string `json:"authority_date"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	State           string `json:"state"`
}

var snapshotValidator = validator.New()

// Validate checks that a snapshot meets the minimum shape required for
// enrichment. A snapshot without an MC number is rejected and the lookup is
// treated as failed. A missing company name is acceptable here; callers log
// it as suspicious.
func (s *CarrierSnapshot) Validate() error {
	if err := snapshotValidator.Struct(s); err != nil {
		return fmt.Errorf("invalid carrier snapshot: %w", err)
	}
	return nil
}

// CarrierRecord is one successfully resolved and enriched carrier, owned by
// the job that produced it. Records are immutable once saved; Seq preserves
// the position of the MC number in the job's input list.
type CarrierRecord struct {
	Key   string `json:"-" badgerhold:"key"` // jobID|seq, assigned by storage
	JobID string `json:"job_id" badgerhold:"index"`
	Seq   int    `json:"-"`

	CarrierSnapshot

	// Derived fields, computed by the enrichment engine
	SafetyScore float64   `json:"safety_score"`
	RiskLevel   RiskLevel `json:"risk_level"`
	ExtractedAt time.Time `json:"extracted_date"`
}

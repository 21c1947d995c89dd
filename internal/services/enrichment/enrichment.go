// Package enrichment derives risk metrics from raw carrier snapshots.
// Everything in this package is a pure function of its inputs: enriching the
// same snapshot twice yields identical derived fields.
package enrichment

import (
	"math"
	"strings"
	"time"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

const (
	maxSafetyScore = 10.0
	minSafetyScore = 1.0

	violationPenalty    = 0.5
	maxViolationPenalty = 4.0
	accidentPenalty     = 1.5
	maxAccidentPenalty  = 4.5
)

var activeKeywords = []string{"active", "authorized", "current", "valid"}
var inactiveKeywords = []string{"inactive", "revoked", "cancelled", "canceled", "out of service"}

// NormalizeAuthorityStatus classifies a raw authority status string by
// keyword containment. An empty status stays Unknown. Inactive and suspended
// keywords are checked before active ones: "inactive" contains "active", so
// the order is load-bearing.
func NormalizeAuthorityStatus(raw string) string {
	status := strings.ToLower(strings.TrimSpace(raw))
	if status == "" {
		return models.AuthorityStatusUnknown
	}

	for _, term := range inactiveKeywords {
		if strings.Contains(status, term) {
			return models.AuthorityStatusInactive
		}
	}
	if strings.Contains(status, "suspended") {
		return models.AuthorityStatusSuspended
	}
	for _, term := range activeKeywords {
		if strings.Contains(status, term) {
			return models.AuthorityStatusActive
		}
	}

	return models.AuthorityStatusUnknown
}

// SafetyScore computes the 1.0-10.0 safety score from 12-month violation and
// accident counts. Lower is worse. Negative counts are coerced to zero.
func SafetyScore(violations, accidents int) float64 {
	if violations < 0 {
		violations = 0
	}
	if accidents < 0 {
		accidents = 0
	}

	score := maxSafetyScore
	score -= math.Min(float64(violations)*violationPenalty, maxViolationPenalty)
	score -= math.Min(float64(accidents)*accidentPenalty, maxAccidentPenalty)

	if score < minSafetyScore {
		score = minSafetyScore
	}

	// Round to one decimal place
	return math.Round(score*10) / 10
}

// RiskLevel classifies a carrier from the same counts the safety score uses.
func RiskLevel(violations, accidents int) models.RiskLevel {
	if violations > 3 || accidents > 1 {
		return models.RiskLevelHigh
	}
	if violations > 0 || accidents > 0 {
		return models.RiskLevelMedium
	}
	return models.RiskLevelLow
}

// Enrich builds an enriched carrier record from a raw snapshot. The caller
// assigns job ownership (JobID, Seq). The authority status is only
// re-derived when the incoming value is missing or Unknown; an already
// classified status passes through unchanged.
func Enrich(snapshot *models.CarrierSnapshot, at time.Time) *models.CarrierRecord {
	record := &models.CarrierRecord{
		CarrierSnapshot: *snapshot,
		ExtractedAt:     at,
	}

	if record.Violations12Mo < 0 {
		record.Violations12Mo = 0
	}
	if record.Accidents12Mo < 0 {
		record.Accidents12Mo = 0
	}

	if record.AuthorityStatus == "" || record.AuthorityStatus == models.AuthorityStatusUnknown {
		record.AuthorityStatus = NormalizeAuthorityStatus(snapshot.AuthorityStatus)
	}

	record.SafetyScore = SafetyScore(record.Violations12Mo, record.Accidents12Mo)
	record.RiskLevel = RiskLevel(record.Violations12Mo, record.Accidents12Mo)

	return record
}

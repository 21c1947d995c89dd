package enrichment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

func TestSafetyScore(t *testing.T) {
	tests := []struct {
		name       string
		violations int
		accidents  int
		want       float64
	}{
		{"clean carrier", 0, 0, 10.0},
		{"two violations one accident", 2, 1, 7.5},
		{"violations only", 3, 0, 8.5},
		{"accidents only", 0, 2, 7.0},
		{"five violations two accidents", 5, 2, 4.5},
		{"violation penalty capped", 50, 0, 6.0},
		{"accident penalty capped", 0, 50, 5.5},
		{"both capped clamps to floor", 50, 50, 1.5},
		{"heavy but not capped", 8, 3, 1.5},
		{"negative counts coerced", -3, -1, 10.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafetyScore(tt.violations, tt.accidents)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSafetyScoreNeverBelowFloor(t *testing.T) {
	for violations := 0; violations <= 20; violations++ {
		for accidents := 0; accidents <= 20; accidents++ {
			score := SafetyScore(violations, accidents)
			require.GreaterOrEqual(t, score, 1.0)
			require.LessOrEqual(t, score, 10.0)
		}
	}
}

func TestRiskLevel(t *testing.T) {
	tests := []struct {
		name       string
		violations int
		accidents  int
		want       models.RiskLevel
	}{
		{"clean is low", 0, 0, models.RiskLevelLow},
		{"single violation is medium", 1, 0, models.RiskLevelMedium},
		{"single accident is medium", 0, 1, models.RiskLevelMedium},
		{"three violations still medium", 3, 0, models.RiskLevelMedium},
		{"four violations is high", 4, 0, models.RiskLevelHigh},
		{"two accidents is high", 0, 2, models.RiskLevelHigh},
		{"both thresholds crossed", 10, 5, models.RiskLevelHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RiskLevel(tt.violations, tt.accidents))
		})
	}
}

func TestNormalizeAuthorityStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", models.AuthorityStatusUnknown},
		{"  ", models.AuthorityStatusUnknown},
		{"ACTIVE", models.AuthorityStatusActive},
		{"Authorized for Property", models.AuthorityStatusActive},
		{"current", models.AuthorityStatusActive},
		{"Inactive", models.AuthorityStatusInactive},
		{"INACTIVE USDOT NUMBER", models.AuthorityStatusInactive},
		{"Revoked 2024", models.AuthorityStatusInactive},
		{"OUT OF SERVICE", models.AuthorityStatusInactive},
		{"Suspended pending review", models.AuthorityStatusSuspended},
		{"who knows", models.AuthorityStatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeAuthorityStatus(tt.raw))
		})
	}
}

func TestEnrich(t *testing.T) {
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	snapshot := &models.CarrierSnapshot{
		MCNumber:        "123456",
		CompanyName:     "Acme Freight LLC",
		AuthorityStatus: "",
		Violations12Mo:  2,
		Accidents12Mo:   1,
	}

	record := Enrich(snapshot, at)

	assert.Equal(t, "123456", record.MCNumber)
	assert.Equal(t, 7.5, record.SafetyScore)
	assert.Equal(t, models.RiskLevelMedium, record.RiskLevel)
	assert.Equal(t, models.AuthorityStatusUnknown, record.AuthorityStatus)
	assert.Equal(t, at, record.ExtractedAt)

	// Source snapshot stays untouched
	assert.Equal(t, "", snapshot.AuthorityStatus)
}

func TestEnrichPreservesClassifiedStatus(t *testing.T) {
	snapshot := &models.CarrierSnapshot{
		MCNumber:        "42",
		AuthorityStatus: models.AuthorityStatusSuspended,
	}

	record := Enrich(snapshot, time.Now())
	assert.Equal(t, models.AuthorityStatusSuspended, record.AuthorityStatus)
}

func TestEnrichRederivesUnknownStatus(t *testing.T) {
	snapshot := &models.CarrierSnapshot{
		MCNumber:        "42",
		AuthorityStatus: models.AuthorityStatusUnknown,
	}

	record := Enrich(snapshot, time.Now())
	assert.Equal(t, models.AuthorityStatusUnknown, record.AuthorityStatus)
}

func TestEnrichCoercesNegativeCounts(t *testing.T) {
	snapshot := &models.CarrierSnapshot{
		MCNumber:       "42",
		Violations12Mo: -5,
		Accidents12Mo:  -2,
	}

	record := Enrich(snapshot, time.Now())
	assert.Equal(t, 0, record.Violations12Mo)
	assert.Equal(t, 0, record.Accidents12Mo)
	assert.Equal(t, 10.0, record.SafetyScore)
	assert.Equal(t, models.RiskLevelLow, record.RiskLevel)
}

func TestEnrichIsDeterministic(t *testing.T) {
	at := time.Now()
	snapshot := &models.CarrierSnapshot{
		MCNumber:        "777",
		AuthorityStatus: "active",
		Violations12Mo:  6,
		Accidents12Mo:   2,
	}

	first := Enrich(snapshot, at)
	second := Enrich(snapshot, at)
	assert.Equal(t, first, second)
}

// -----------------------------------------------------------------------
// Export - flat row shapes for carrier and failure downloads. Column order
// is part of the external contract and must match across CSV, JSON, XLSX.
// -----------------------------------------------------------------------

package export

import (
	"strconv"
	"time"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

const extractedDateLayout = "2006-01-02 15:04:05"

// Row is one carrier record flattened for export. Field order here defines
// the column order of every export format.
type Row struct {
	MCNumber        string `json:"MC#"`
	DOTNumber       string `json:"DOT#"`
	CompanyName     string `json:"Company Name"`
	AuthorityStatus string `json:"Authority Status"`
	InsuranceStatus string `json:"Insurance Status"`
	InsuranceExpiry string `json:"Insurance Expiry"`
	SafetyScore     string `json:"Safety Score"`
	Violations12Mo  int    `json:"Violations (12mo)"`
	Accidents12Mo   int    `json:"Accidents (12mo)"`
	Phone           string `json:"Phone"`
	Email           string `json:"Email"`
	State           string `json:"State"`
	RiskLevel       string `json:"Risk Level"`
	ExtractedDate   string `json:"Extracted Date"`
}

// Headers returns the carrier export column names in contract order.
func Headers() []string {
	return []string{
		"MC#", "DOT#", "Company Name", "Authority Status",
		"Insurance Status", "Insurance Expiry", "Safety Score",
		"Violations (12mo)", "Accidents (12mo)", "Phone", "Email",
		"State", "Risk Level", "Extracted Date",
	}
}

// NewRow flattens an enriched carrier record into an export row.
func NewRow(record *models.CarrierRecord) Row {
	return Row{
		MCNumber:        record.MCNumber,
		DOTNumber:       record.DOTNumber,
		CompanyName:     record.CompanyName,
		AuthorityStatus: record.AuthorityStatus,
		InsuranceStatus: record.InsuranceStatus,
		InsuranceExpiry: record.InsuranceExpiry,
		SafetyScore:     strconv.FormatFloat(record.SafetyScore, 'f', 1, 64),
		Violations12Mo:  record.Violations12Mo,
		Accidents12Mo:   record.Accidents12Mo,
		Phone:           record.Phone,
		Email:           record.Email,
		State:           record.State,
		RiskLevel:       string(record.RiskLevel),
		ExtractedDate:   record.ExtractedAt.Format(extractedDateLayout),
	}
}

func (r Row) values() []string {
	return []string{
		r.MCNumber, r.DOTNumber, r.CompanyName, r.AuthorityStatus,
		r.InsuranceStatus, r.InsuranceExpiry, r.SafetyScore,
		strconv.Itoa(r.Violations12Mo), strconv.Itoa(r.Accidents12Mo),
		r.Phone, r.Email, r.State, r.RiskLevel, r.ExtractedDate,
	}
}

// FailureRow is one failed extraction flattened for export.
type FailureRow struct {
	MCNumber    string `json:"MC Number"`
	ErrorReason string `json:"Error Reason"`
	RetryCount  int    `json:"Retry Count"`
	FailedAt    string `json:"Failed At"`
}

// FailureHeaders returns the failure export column names in contract order.
func FailureHeaders() []string {
	return []string{"MC Number", "Error Reason", "Retry Count", "Failed At"}
}

// NewFailureRow flattens a failed extraction into an export row.
func NewFailureRow(failure *models.FailedExtraction) FailureRow {
	return FailureRow{
		MCNumber:    failure.MCNumber,
		ErrorReason: failure.ErrorReason,
		RetryCount:  failure.RetryCount,
		FailedAt:    failure.FailedAt.Format(extractedDateLayout),
	}
}

func (r FailureRow) values() []string {
	return []string{r.MCNumber, r.ErrorReason, strconv.Itoa(r.RetryCount), r.FailedAt}
}

// Filename builds a download filename for a job export, e.g.
// "carriers_job_ab12_20260115.csv".
func Filename(prefix, jobID, extension string, at time.Time) string {
	return prefix + "_" + jobID + "_" + at.Format("20060102") + "." + extension
}

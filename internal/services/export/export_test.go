package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

func sampleRecords() []*models.CarrierRecord {
	extractedAt := time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)
	return []*models.CarrierRecord{
		{
			JobID: "job_1",
			Seq:   0,
			CarrierSnapshot: models.CarrierSnapshot{
				MCNumber:        "123456",
				DOTNumber:       "7654321",
				CompanyName:     "Acme Freight LLC",
				AuthorityStatus: "Active",
				InsuranceStatus: "Active",
				InsuranceExpiry: "12/31/2026",
				Violations12Mo:  2,
				Accidents12Mo:   1,
				Phone:           "(555) 123-4567",
				Email:           "dispatch@acmefreight.example",
				State:           "TX",
			},
			SafetyScore: 7.5,
			RiskLevel:   models.RiskLevelMedium,
			ExtractedAt: extractedAt,
		},
		{
			JobID: "job_1",
			Seq:   1,
			CarrierSnapshot: models.CarrierSnapshot{
				MCNumber:    "789",
				CompanyName: "Lone Star Hauling",
			},
			SafetyScore: 10,
			RiskLevel:   models.RiskLevelLow,
			ExtractedAt: extractedAt,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{
		"MC#", "DOT#", "Company Name", "Authority Status",
		"Insurance Status", "Insurance Expiry", "Safety Score",
		"Violations (12mo)", "Accidents (12mo)", "Phone", "Email",
		"State", "Risk Level", "Extracted Date",
	}, rows[0])

	assert.Equal(t, []string{
		"123456", "7654321", "Acme Freight LLC", "Active",
		"Active", "12/31/2026", "7.5", "2", "1",
		"(555) 123-4567", "dispatch@acmefreight.example", "TX",
		"Medium", "2026-01-15 09:30:00",
	}, rows[1])

	// Whole scores still render with one decimal
	assert.Equal(t, "10.0", rows[2][6])
}

func TestWriteCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 1) // header only
}

func TestWriteJSONKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleRecords()))

	// Keys appear in contract order because Row field order defines it
	out := buf.String()
	last := -1
	for _, header := range Headers() {
		idx := strings.Index(out, `"`+header+`"`)
		require.NotEqual(t, -1, idx, "missing key %q", header)
		assert.Greater(t, idx, last, "key %q out of order", header)
		last = idx
	}

	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "123456", rows[0]["MC#"])
	assert.Equal(t, "7.5", rows[0]["Safety Score"])
	assert.Equal(t, "Medium", rows[0]["Risk Level"])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleRecords()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Carriers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers(), rows[0])
	assert.Equal(t, "Acme Freight LLC", rows[1][2])
	assert.Equal(t, "Lone Star Hauling", rows[2][2])
}

func TestWriteFailuresCSV(t *testing.T) {
	failures := []*models.FailedExtraction{
		{
			JobID:       "job_1",
			Seq:         1,
			MCNumber:    "222",
			ErrorReason: "connection refused (after 3 retries)",
			RetryCount:  3,
			FailedAt:    time.Date(2026, 1, 15, 9, 45, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteFailuresCSV(&buf, failures))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"MC Number", "Error Reason", "Retry Count", "Failed At"}, rows[0])
	assert.Equal(t, []string{"222", "connection refused (after 3 retries)", "3", "2026-01-15 09:45:00"}, rows[1])
}

func TestFilename(t *testing.T) {
	at := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "carriers_job_abc_20260115.csv", Filename("carriers", "job_abc", "csv", at))
	assert.Equal(t, "failures_job_abc_20260115.xlsx", Filename("failures", "job_abc", "xlsx", at))
}

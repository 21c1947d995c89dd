package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

// WriteCSV streams enriched carrier records as CSV with a header row.
func WriteCSV(w io.Writer, records []*models.CarrierRecord) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Headers()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		row := NewRow(record)
		if err := writer.Write(row.values()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteFailuresCSV streams failed extractions as CSV with a header row.
func WriteFailuresCSV(w io.Writer, failures []*models.FailedExtraction) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(FailureHeaders()); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, failure := range failures {
		row := NewFailureRow(failure)
		if err := writer.Write(row.values()); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

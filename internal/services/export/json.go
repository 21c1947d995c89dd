package export

import (
	"encoding/json"
	"io"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

// WriteJSON streams enriched carrier records as a JSON array. Rows use the
// same human-readable field names as the CSV header, in the same order.
func WriteJSON(w io.Writer, records []*models.CarrierRecord) error {
	rows := make([]Row, 0, len(records))
	for _, record := range records {
		rows = append(rows, NewRow(record))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// WriteFailuresJSON streams failed extractions as a JSON array.
func WriteFailuresJSON(w io.Writer, failures []*models.FailedExtraction) error {
	rows := make([]FailureRow, 0, len(failures))
	for _, failure := range failures {
		rows = append(rows, NewFailureRow(failure))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

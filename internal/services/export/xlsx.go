package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/potlucy73-hue/carriervet/internal/models"
)

const carrierSheet = "Carriers"

// WriteXLSX streams enriched carrier records as an XLSX workbook with a
// single Carriers sheet, same columns as the CSV export.
func WriteXLSX(w io.Writer, records []*models.CarrierRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(carrierSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if index, err := f.GetSheetIndex(carrierSheet); err == nil {
		f.SetActiveSheet(index)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	for i, header := range Headers() {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(carrierSheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for rowIdx, record := range records {
		row := NewRow(record)
		for colIdx, value := range row.values() {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(carrierSheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	// Widen the name and date columns so exports open readable
	_ = f.SetColWidth(carrierSheet, "C", "C", 32)
	_ = f.SetColWidth(carrierSheet, "N", "N", 20)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

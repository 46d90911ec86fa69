package export

import (
	"fmt"

	"github.com/Swayam-Swaroop-Sahu/Mini-Project/internal/core"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet of the tabular report.
const SheetName = "Submissions"

// RenderTabular builds an XLSX workbook with a header row followed by one
// row per record, in the order given.
func RenderTabular(records []core.Submission) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, col := range Columns {
		header[i] = col.Header
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(SheetName, name, name, col.Width); err != nil {
			return nil, fmt.Errorf("column width %s: %w", name, err)
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(Columns))
	if err := f.SetCellStyle(SheetName, "A1", last+"1", bold); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	row := make([]any, len(Columns))
	for i, rec := range records {
		for j, col := range Columns {
			row[j] = col.Value(rec)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

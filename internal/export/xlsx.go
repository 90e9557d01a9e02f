// Package export writes tabular reports as xlsx workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Column maps a row key to its header label. Order of the slice is the
// order of the columns in the sheet.
type Column struct {
	Key   string
	Label string
}

type Row map[string]any

// WriteXLSX writes one sheet with a header row followed by rows. Keys
// missing from a row leave the cell empty.
func WriteXLSX(w io.Writer, sheet string, columns []Column, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = "Sheet1"
	}
	if cur := f.GetSheetName(f.GetActiveSheetIndex()); cur != sheet {
		if err := f.SetSheetName(cur, sheet); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		values := make([]any, len(columns))
		for j, c := range columns {
			if v, ok := r[c.Key]; ok && v != nil {
				values[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}
	return f.Write(w)
}

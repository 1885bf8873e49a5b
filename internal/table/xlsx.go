package table

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	maxSheetNameLength = 31
	// builtin "#,##0" number format
	thousandsNumFmt = 3
)

// WriteXLSX writes the table as a single-sheet workbook. Int columns get a
// thousands-separated number format.
func WriteXLSX(w io.Writer, t *Table, sheet string) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet = sheetName(sheet)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(t.schema.Columns))
	for i, name := range t.Columns() {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for r := 0; r < t.rows; r++ {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		row := t.Row(r)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", r, err)
		}
	}

	style, err := f.NewStyle(&excelize.Style{NumFmt: thousandsNumFmt})
	if err != nil {
		return fmt.Errorf("create number style: %w", err)
	}
	for i, cs := range t.schema.Columns {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := 16.0
		if cs.Kind == KindString {
			width = 36
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
		if cs.Kind == KindInt {
			if err := f.SetColStyle(sheet, col, style); err != nil {
				return fmt.Errorf("set column style: %w", err)
			}
		}
	}

	return f.Write(w)
}

func sheetName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Sheet1"
	}
	name = strings.NewReplacer(":", "_", "\\", "_", "/", "_", "?", "_", "*", "_", "[", "(", "]", ")").Replace(name)
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	return name
}

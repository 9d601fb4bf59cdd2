package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXWriter implements StatementWriter by writing a local XLSX workbook
// with one sheet per account.
type XLSXWriter struct {
	path string
}

// NewXLSXWriter creates an XLSXWriter that saves to the given path.
func NewXLSXWriter(path string) *XLSXWriter {
	return &XLSXWriter{path: path}
}

// Write renders each statement onto its own sheet and saves the workbook.
func (w *XLSXWriter) Write(_ context.Context, statements []Statement) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, st := range statements {
		title := sheetTitle(st.AccountID)
		if i == 0 {
			// Rename the default sheet instead of leaving it empty.
			if err := f.SetSheetName("Sheet1", title); err != nil {
				return fmt.Errorf("renaming default sheet: %w", err)
			}
		} else {
			if _, err := f.NewSheet(title); err != nil {
				return fmt.Errorf("creating sheet %s: %w", title, err)
			}
		}
		if err := writeSheet(f, title, statementValues(st)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(w.path); err != nil {
		return fmt.Errorf("saving workbook %s: %w", w.path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, values [][]any) error {
	for rowIdx, row := range values {
		for colIdx, val := range row {
			if val == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return fmt.Errorf("computing cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("writing cell %s!%s: %w", sheet, cell, err)
			}
		}
	}
	return nil
}

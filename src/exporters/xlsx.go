package exporters

import (
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
)

// WriteXLSX saves t to a workbook at path with a single sheet named
// SheetName. Float columns are numeric cells and timestamps are date cells;
// NaN and missing timestamps are left blank.
func WriteXLSX(path string, t *models.Table) error {
	if t == nil {
		return fmt.Errorf("no table to export")
	}
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.L.Warn("Failed to close workbook", "path", path, "error", err)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	for c, name := range header(t) {
		if err := setCell(f, c, 0, name); err != nil {
			return err
		}
	}
	for i, key := range t.Index {
		if err := setCell(f, 0, i+1, sanitize(key)); err != nil {
			return err
		}
		for c := range t.Columns {
			if err := setCell(f, c+1, i+1, cellValue(&t.Columns[c], i)); err != nil {
				return err
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	logger.L.Debug("Wrote workbook", "path", path, "rows", t.Len())
	return nil
}

func cellValue(col *models.Column, i int) any {
	switch col.Kind {
	case models.KindFloat:
		v := col.Floats[i]
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	case models.KindTime:
		if col.Times[i].IsZero() {
			return nil
		}
		return col.Times[i]
	default:
		return sanitize(col.Text[i])
	}
}

func setCell(f *excelize.File, col, row int, value any) error {
	if value == nil {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(SheetName, cell, value); err != nil {
		return fmt.Errorf("failed to set cell %s: %w", cell, err)
	}
	return nil
}

// Package exporters writes parsed trade tables to files other tools read.
package exporters

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/username/parsegbx/src/models"
	"github.com/username/parsegbx/src/security/validation"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Trades"

// WriteCSV writes t as CSV: a header of the index name and the column names,
// then one record per row. Timestamps are RFC 3339; NaN and missing
// timestamps are empty fields.
func WriteCSV(w io.Writer, t *models.Table) error {
	if t == nil {
		return fmt.Errorf("no table to export")
	}
	writer := csv.NewWriter(w)

	if err := writer.Write(header(t)); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range t.Index {
		if err := writer.Write(record(t, i)); err != nil {
			return fmt.Errorf("failed to write CSV record %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV output: %w", err)
	}
	return nil
}

func header(t *models.Table) []string {
	return append([]string{t.IndexName}, t.ColumnNames()...)
}

func record(t *models.Table, i int) []string {
	rec := make([]string, 0, len(t.Columns)+1)
	rec = append(rec, sanitize(t.Index[i]))
	for c := range t.Columns {
		col := &t.Columns[c]
		v := col.String(i)
		if col.Kind == models.KindString {
			v = sanitize(v)
		}
		rec = append(rec, v)
	}
	return rec
}

func sanitize(s string) string {
	return validation.SanitizeForFormulaInjection(validation.StripUnprintable(s))
}

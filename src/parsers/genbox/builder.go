package genbox

import (
	"fmt"

	"github.com/username/parsegbx/src/models"
)

// BuildTable labels raw rows with the schema. The first row is the report's
// own header line and is discarded; names come from the schema by position.
// Dropped columns are removed and the first remaining column becomes the row
// key. Every row must be exactly as wide as the schema.
func BuildTable(rows []models.RawRow, s Schema) (*models.Table, error) {
	width := len(s.Columns)
	for i, r := range rows {
		if len(r) != width {
			return nil, &ShapeMismatchError{Row: i, Got: len(r), Want: width}
		}
	}

	drop := make(map[string]bool, len(s.Drop))
	for _, d := range s.Drop {
		drop[d] = true
	}
	var keep []int
	for i, name := range s.Columns {
		if !drop[name] {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, fmt.Errorf("%w: schema keeps no columns", ErrShapeMismatch)
	}

	var data []models.RawRow
	if len(rows) > 1 {
		data = rows[1:]
	}

	keyPos := keep[0]
	t := &models.Table{
		IndexName: s.Columns[keyPos],
		Index:     make([]string, 0, len(data)),
		Columns:   make([]models.Column, 0, len(keep)-1),
	}
	for _, pos := range keep[1:] {
		col := models.Column{Name: s.Columns[pos], Kind: models.KindString, Text: make([]string, 0, len(data))}
		for _, r := range data {
			col.Text = append(col.Text, r[pos])
		}
		t.Columns = append(t.Columns, col)
	}
	for _, r := range data {
		t.Index = append(t.Index, r[keyPos])
	}
	return t, nil
}

package genbox

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
)

// SplitColumns returns the visible text of every <td> and <th> of each row.
// A row that is not a <tr> element aborts the split: the failure is logged
// and an empty result is returned instead of partial data.
func SplitColumns(rows []*html.Node) []models.RawRow {
	out := make([]models.RawRow, 0, len(rows))
	for i, row := range rows {
		if row == nil || row.Type != html.ElementNode || row.DataAtom != atom.Tr {
			logger.L.Error("Column split aborted, returning no rows", "row", i, "error", ErrMalformedRow)
			return []models.RawRow{}
		}
		cells := findAll(row, atom.Td, atom.Th)
		values := make(models.RawRow, len(cells))
		for j, cell := range cells {
			values[j] = NodeText(cell)
		}
		out = append(out, values)
	}
	return out
}

package genbox

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/username/parsegbx/src/models"
	"github.com/username/parsegbx/src/testutil"
)

func TestSplitColumns(t *testing.T) {
	table := tableFrom(t, `<table>
<tr><th>Ticket</th><th>Profit</th></tr>
<tr><td>1001</td><td> 50.00 </td></tr>
<tr><td colspan="2">&nbsp;</td></tr>
</table>`)

	raw := SplitColumns(ListRows(table))
	assert.Equal(t, []models.RawRow{
		{"Ticket", "Profit"},
		{"1001", " 50.00 "},
		{"\u00a0"},
	}, raw)
}

func TestSplitColumnsEmpty(t *testing.T) {
	raw := SplitColumns(nil)
	assert.NotNil(t, raw)
	assert.Empty(t, raw)
}

func TestSplitColumnsMalformedRowYieldsNothing(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	table := tableFrom(t, `<table><tr><td>1</td></tr><tr><td>2</td></tr></table>`)
	rows := ListRows(table)

	tests := []struct {
		name string
		bad  *html.Node
	}{
		{"nil row", nil},
		{"text node", &html.Node{Type: html.TextNode, Data: "loose"}},
		{"cell instead of row", rows[0].FirstChild},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := SplitColumns([]*html.Node{rows[0], tt.bad, rows[1]})
			require.NotNil(t, raw)
			assert.Empty(t, raw)
		})
	}

	errs := logs.RecordsAt(slog.LevelError)
	require.Len(t, errs, len(tests))
	assert.EqualValues(t, 1, errs[0].Attrs["row"])
}

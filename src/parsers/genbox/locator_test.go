package genbox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateTableFirstInDocumentOrder(t *testing.T) {
	doc := `<html><body>
<div><table id="inner"><tr><td>first</td></tr></table></div>
<table id="second"><tr><td>second</td></tr></table>
</body></html>`

	table, err := LocateTable(doc, DialectDocument)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, "first", NodeText(table))
}

func TestLocateTableAbsent(t *testing.T) {
	table, err := LocateTable(`<html><body><p>Closed Transactions:</p></body></html>`, DialectDocument)
	require.NoError(t, err)
	assert.Nil(t, table)

	table, err = LocateTable("", DialectDocument)
	require.NoError(t, err)
	assert.Nil(t, table)
}

func TestLocateTableMalformed(t *testing.T) {
	// Unclosed cells, rows and table are recovered by the HTML5 parser.
	doc := `<body><table><tr><td>1<td>2<tr><td>3`

	table, err := LocateTable(doc, DialectDocument)
	require.NoError(t, err)
	require.NotNil(t, table)

	rows := ListRows(table)
	require.Len(t, rows, 2)
	assert.Equal(t, "12", NodeText(rows[0]))
	assert.Equal(t, "3", NodeText(rows[1]))
}

func TestLocateTableFragment(t *testing.T) {
	table, err := LocateTable(`<p>x</p><table><tr><td>frag</td></tr></table>`, DialectFragment)
	require.NoError(t, err)
	require.NotNil(t, table)
	assert.Equal(t, "frag", NodeText(table))
}

func TestLocateTableUnknownDialect(t *testing.T) {
	_, err := LocateTable("<table></table>", Dialect("lxml"))
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestNodeText(t *testing.T) {
	assert.Equal(t, "", NodeText(nil))

	table, err := LocateTable(`<table><tr><td>a<b>b</b><!-- c --></td><td>d</td></tr></table>`, DialectDocument)
	require.NoError(t, err)
	assert.Equal(t, "abd", NodeText(table))
}

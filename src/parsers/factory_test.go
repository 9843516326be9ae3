package parsers

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/parsegbx/src/parsers/genbox"
)

func TestGetParser(t *testing.T) {
	for _, source := range []string{"", "genbox", "Genbox"} {
		p, err := GetParser(source, genbox.Options{})
		require.NoError(t, err, source)
		assert.IsType(t, &genbox.Parser{}, p)
	}

	_, err := GetParser("degiro", genbox.Options{})
	assert.EqualError(t, err, "no parser available for source: degiro")
}

func TestGetParserParsesReport(t *testing.T) {
	p, err := GetParser("genbox", genbox.Options{})
	require.NoError(t, err)

	tbl, err := p.ParseFile(filepath.Join("genbox", "testdata", "backtest_ISOS.htm"))
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Len())
}

package processors

import (
	"log/slog"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/parsegbx/src/models"
	"github.com/username/parsegbx/src/parsers/genbox"
	"github.com/username/parsegbx/src/testutil"
)

func parsedReport(t *testing.T) *models.Table {
	t.Helper()
	tbl, err := genbox.NewParser(genbox.Options{}).ParseFile(filepath.Join("..", "parsers", "genbox", "testdata", "backtest_ISOS.htm"))
	require.NoError(t, err)
	return tbl
}

func TestTradeProcessor(t *testing.T) {
	trades, err := NewTradeProcessor().Process(parsedReport(t), "backtest_ISOS")
	require.NoError(t, err)
	require.Len(t, trades, 3)

	first := trades[0]
	assert.Equal(t, "backtest_ISOS", first.Source)
	assert.Equal(t, "1001", first.Ticket)
	assert.Equal(t, "buy", first.Type)
	assert.Equal(t, "eurusd", first.Asset)
	assert.Equal(t, 0.1, first.Volume)
	assert.Equal(t, 1.065, first.OpenPrice)
	assert.Equal(t, 1.06, first.SL)
	assert.Equal(t, 1.075, first.TP)
	assert.Equal(t, 1.07, first.ClosePrice)
	assert.Equal(t, 50.0, first.Profit)
	assert.Equal(t, time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC), first.OpenTime)
	assert.Equal(t, time.Date(2023, 1, 2, 15, 30, 0, 0, time.UTC), first.CloseTime)
	assert.Len(t, first.HashId, 64)

	seen := map[string]bool{}
	for _, tr := range trades {
		assert.False(t, seen[tr.HashId], "hash collision for %s", tr.Ticket)
		seen[tr.HashId] = true
	}

	again, err := NewTradeProcessor().Process(parsedReport(t), "backtest_ISOS")
	require.NoError(t, err)
	assert.Equal(t, trades[0].HashId, again[0].HashId)

	other, err := NewTradeProcessor().Process(parsedReport(t), "backtest_OS")
	require.NoError(t, err)
	assert.NotEqual(t, trades[0].HashId, other[0].HashId)
}

func TestTradeProcessorRequiresTypedColumns(t *testing.T) {
	tbl := parsedReport(t)
	profit := tbl.Column(ColProfit)
	*profit = models.Column{Name: ColProfit, Kind: models.KindString, Text: []string{"1", "2", "3"}}

	_, err := NewTradeProcessor().Process(tbl, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Profit"`)

	_, err = NewTradeProcessor().Process(nil, "x")
	assert.Error(t, err)

	_, err = NewTradeProcessor().Process(&models.Table{}, "x")
	assert.Error(t, err)
}

func TestTradeProcessorKeepsNaNAndWarnsOnDuplicates(t *testing.T) {
	logs := testutil.CaptureLogs(t)
	tbl := parsedReport(t)
	tbl.Index[2] = "1001"
	tbl.Column(ColProfit).Floats[1] = math.NaN()

	trades, err := NewTradeProcessor().Process(tbl, "x")
	require.NoError(t, err)
	assert.True(t, math.IsNaN(trades[1].Profit))
	assert.NotEqual(t, trades[0].HashId, trades[2].HashId)

	warns := logs.RecordsAt(slog.LevelWarn)
	require.NotEmpty(t, warns)
	assert.Equal(t, "Duplicate tickets in report", warns[0].Message)
}

func TestSummaryProcessor(t *testing.T) {
	trades, err := NewTradeProcessor().Process(parsedReport(t), "backtest_ISOS")
	require.NoError(t, err)

	s := NewSummaryProcessor().Summarize("backtest_ISOS", trades)

	assert.Equal(t, "backtest_ISOS", s.Label)
	assert.Equal(t, 3, s.Trades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 0, s.Missing)
	assert.Equal(t, 66.67, s.WinRate)
	assert.Equal(t, 62.5, s.GrossProfit)
	assert.Equal(t, -20.0, s.GrossLoss)
	assert.Equal(t, 42.5, s.NetProfit)
	assert.Equal(t, 0.35, s.TotalVolume)
	assert.Equal(t, time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC), s.FirstOpen)
	assert.Equal(t, time.Date(2023, 1, 4, 16, 45, 0, 0, time.UTC), s.LastClose)
	assert.Equal(t, map[string]float64{"eurusd": 30, "gbpusd": 12.5}, s.ProfitByAsset)
}

func TestSummaryProcessorExactSums(t *testing.T) {
	trades := []models.BacktestTrade{
		{Asset: "a", Volume: 0.1, Profit: 0.1},
		{Asset: "a", Volume: 0.2, Profit: 0.2},
		{Asset: "b", Volume: 0.1, Profit: math.NaN()},
		{Asset: "b", Volume: 0.1, Profit: 0},
	}

	s := NewSummaryProcessor().Summarize("x", trades)

	assert.Equal(t, 0.3, s.NetProfit)
	assert.Equal(t, 0.5, s.TotalVolume)
	assert.Equal(t, 1, s.Missing)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 0, s.Losses)
	assert.Equal(t, 66.67, s.WinRate)
	assert.Equal(t, map[string]float64{"a": 0.3, "b": 0}, s.ProfitByAsset)
	assert.True(t, s.FirstOpen.IsZero())
}

func TestSummaryProcessorEmpty(t *testing.T) {
	s := NewSummaryProcessor().Summarize("empty", nil)

	assert.Equal(t, 0, s.Trades)
	assert.Zero(t, s.WinRate)
	assert.Zero(t, s.NetProfit)
	assert.NotNil(t, s.ProfitByAsset)
}

package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/username/parsegbx/src/logger"
	"github.com/username/parsegbx/src/models"
)

// Column names of a parsed Genbox table.
const (
	ColOpenTime   = "Open Time"
	ColType       = "Type"
	ColVolume     = "Volume"
	ColAsset      = "Asset"
	ColOpenPrice  = "Open Price"
	ColSL         = "SL"
	ColTP         = "TP"
	ColCloseTime  = "Close Time"
	ColClosePrice = "Close Price"
	ColProfit     = "Profit"
)

type TradeProcessor struct{}

func NewTradeProcessor() *TradeProcessor { return &TradeProcessor{} }

// Process maps every row of a typed table to a BacktestTrade tagged with
// source. Numeric and timestamp columns must already be typed.
func (p *TradeProcessor) Process(t *models.Table, source string) ([]models.BacktestTrade, error) {
	if t == nil {
		return nil, fmt.Errorf("no table to process")
	}

	floats := map[string][]float64{}
	for _, name := range []string{ColVolume, ColOpenPrice, ColSL, ColTP, ColClosePrice, ColProfit} {
		col, err := typedColumn(t, name, models.KindFloat)
		if err != nil {
			return nil, err
		}
		floats[name] = col.Floats
	}
	times := map[string][]time.Time{}
	for _, name := range []string{ColOpenTime, ColCloseTime} {
		col, err := typedColumn(t, name, models.KindTime)
		if err != nil {
			return nil, err
		}
		times[name] = col.Times
	}
	typeCol := t.Column(ColType)
	assetCol := t.Column(ColAsset)
	if typeCol == nil || assetCol == nil {
		return nil, fmt.Errorf("table is missing the %q or %q column", ColType, ColAsset)
	}

	if dups := t.DuplicateKeys(); len(dups) > 0 {
		logger.L.Warn("Duplicate tickets in report", "source", source, "tickets", dups)
	}

	trades := make([]models.BacktestTrade, 0, t.Len())
	for i, ticket := range t.Index {
		tr := models.BacktestTrade{
			Source:     source,
			Ticket:     ticket,
			OpenTime:   times[ColOpenTime][i],
			Type:       typeCol.String(i),
			Volume:     floats[ColVolume][i],
			Asset:      assetCol.String(i),
			OpenPrice:  floats[ColOpenPrice][i],
			SL:         floats[ColSL][i],
			TP:         floats[ColTP][i],
			CloseTime:  times[ColCloseTime][i],
			ClosePrice: floats[ColClosePrice][i],
			Profit:     floats[ColProfit][i],
		}
		tr.HashId = generateHash(tr)
		trades = append(trades, tr)
	}
	return trades, nil
}

func typedColumn(t *models.Table, name string, kind models.ColumnKind) (*models.Column, error) {
	col := t.Column(name)
	if col == nil {
		return nil, fmt.Errorf("table is missing the %q column", name)
	}
	if col.Kind != kind {
		return nil, fmt.Errorf("column %q is %s, want %s", name, col.Kind, kind)
	}
	return col, nil
}

// generateHash creates a unique hash for the trade based on source data.
func generateHash(tr models.BacktestTrade) string {
	input := fmt.Sprintf("%s|%s|%s|%f", tr.Source, tr.Ticket, tr.OpenTime.Format(time.RFC3339), tr.Profit)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

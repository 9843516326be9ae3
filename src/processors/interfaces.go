package processors

import (
	"github.com/username/parsegbx/src/models"
)

// TradeMapper defines the interface for turning a typed table into trades.
type TradeMapper interface {
	Process(t *models.Table, source string) ([]models.BacktestTrade, error)
}

// Summarizer defines the interface for aggregating trades.
type Summarizer interface {
	Summarize(label string, trades []models.BacktestTrade) models.BacktestSummary
}

var (
	_ TradeMapper = (*TradeProcessor)(nil)
	_ Summarizer  = (*SummaryProcessor)(nil)
)

package processors

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/username/parsegbx/src/models"
	"github.com/username/parsegbx/src/utils"
)

type SummaryProcessor struct{}

func NewSummaryProcessor() *SummaryProcessor { return &SummaryProcessor{} }

// Summarize aggregates trades, summing in decimal. Trades with a NaN or
// infinite profit count as missing and stay out of every profit figure.
func (p *SummaryProcessor) Summarize(label string, trades []models.BacktestTrade) models.BacktestSummary {
	s := models.BacktestSummary{
		Label:         label,
		Trades:        len(trades),
		ProfitByAsset: map[string]float64{},
	}

	gross, loss, volume := decimal.Zero, decimal.Zero, decimal.Zero
	byAsset := map[string]decimal.Decimal{}

	for _, tr := range trades {
		if finite(tr.Volume) {
			volume = volume.Add(decimal.NewFromFloat(tr.Volume))
		}
		if !tr.OpenTime.IsZero() && (s.FirstOpen.IsZero() || tr.OpenTime.Before(s.FirstOpen)) {
			s.FirstOpen = tr.OpenTime
		}
		if tr.CloseTime.After(s.LastClose) {
			s.LastClose = tr.CloseTime
		}

		if !finite(tr.Profit) {
			s.Missing++
			continue
		}
		profit := decimal.NewFromFloat(tr.Profit)
		switch {
		case profit.IsPositive():
			s.Wins++
			gross = gross.Add(profit)
		case profit.IsNegative():
			s.Losses++
			loss = loss.Add(profit)
		}
		byAsset[tr.Asset] = byAsset[tr.Asset].Add(profit)
	}

	s.GrossProfit = gross.InexactFloat64()
	s.GrossLoss = loss.InexactFloat64()
	s.NetProfit = gross.Add(loss).InexactFloat64()
	s.TotalVolume = volume.InexactFloat64()
	for asset, v := range byAsset {
		s.ProfitByAsset[asset] = v.InexactFloat64()
	}
	if counted := s.Trades - s.Missing; counted > 0 {
		s.WinRate = utils.RoundFloat(float64(s.Wins)/float64(counted)*100, 2)
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

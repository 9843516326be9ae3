package main

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/username/parsegbx/src/models"
)

func printSummary(w io.Writer, s models.BacktestSummary) {
	fmt.Fprintf(w, "Backtest %s\n", s.Label)
	fmt.Fprintf(w, "  Trades:       %d (wins %d, losses %d, missing %d)\n", s.Trades, s.Wins, s.Losses, s.Missing)
	fmt.Fprintf(w, "  Win rate:     %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "  Gross profit: %.2f\n", s.GrossProfit)
	fmt.Fprintf(w, "  Gross loss:   %.2f\n", s.GrossLoss)
	fmt.Fprintf(w, "  Net profit:   %.2f\n", s.NetProfit)
	fmt.Fprintf(w, "  Volume:       %g\n", s.TotalVolume)
	if !s.FirstOpen.IsZero() {
		fmt.Fprintf(w, "  Period:       %s - %s\n", s.FirstOpen.Format(time.DateTime), s.LastClose.Format(time.DateTime))
	}

	assets := make([]string, 0, len(s.ProfitByAsset))
	for a := range s.ProfitByAsset {
		assets = append(assets, a)
	}
	sort.Strings(assets)
	for _, a := range assets {
		fmt.Fprintf(w, "  %-12s  %.2f\n", a+":", s.ProfitByAsset[a])
	}
}

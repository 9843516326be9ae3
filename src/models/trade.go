package models

import "time"

// BacktestTrade is one closed transaction of a backtest report, fully typed.
type BacktestTrade struct {
	ID         int64     `json:"id,omitempty"`
	Source     string    `json:"source"` // report label, e.g. the file stem
	Ticket     string    `json:"ticket"`
	OpenTime   time.Time `json:"open_time"`
	Type       string    `json:"type"` // e.g. "buy", "sell"
	Volume     float64   `json:"volume"`
	Asset      string    `json:"asset"`
	OpenPrice  float64   `json:"open_price"`
	SL         float64   `json:"sl"`
	TP         float64   `json:"tp"`
	CloseTime  time.Time `json:"close_time"`
	ClosePrice float64   `json:"close_price"`
	Profit     float64   `json:"profit"`
	HashId     string    `json:"hash_id"`
}

// BacktestSummary aggregates the trades of one report.
type BacktestSummary struct {
	Label         string             `json:"label"`
	Trades        int                `json:"trades"`
	Wins          int                `json:"wins"`
	Losses        int                `json:"losses"`
	Missing       int                `json:"missing"` // trades without a usable profit
	WinRate       float64            `json:"win_rate"`
	GrossProfit   float64            `json:"gross_profit"`
	GrossLoss     float64            `json:"gross_loss"`
	NetProfit     float64            `json:"net_profit"`
	TotalVolume   float64            `json:"total_volume"`
	FirstOpen     time.Time          `json:"first_open"`
	LastClose     time.Time          `json:"last_close"`
	ProfitByAsset map[string]float64 `json:"profit_by_asset"`
}

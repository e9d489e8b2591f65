// Package journal persists completed trades and observer-facing
// portfolio snapshots.
package journal

import "time"

// TradeRecord is the fixed 8-field schema every sink writes for a
// completed round-trip trade.
type TradeRecord struct {
	Symbol     string
	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	Quantity   float64
	PnL        float64
	Reason     string
}

// OpenPosition is the snapshot view of one open position.
type OpenPosition struct {
	Symbol     string    `json:"symbol"`
	Quantity   float64   `json:"quantity"`
	EntryPrice float64   `json:"entry_price"`
	EntryTime  time.Time `json:"entry_timestamp"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
}

// Snapshot is one observer-facing sample of the portfolio. It is
// published with an overwrite-on-each-report policy, not appended.
type Snapshot struct {
	Time           time.Time      `json:"last_updated"`
	PortfolioValue float64        `json:"portfolio_value"`
	PnL            float64        `json:"pnl"`
	PnLPct         float64        `json:"pnl_pct"`
	Cash           float64        `json:"cash"`
	OpenPositions  []OpenPosition `json:"open_positions"`
}

type Journal interface {
	RecordTrade(TradeRecord) error
	PublishSnapshot(Snapshot) error
	Close() error
}

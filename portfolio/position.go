package portfolio

import (
	"math"
	"time"
)

// ExitReason records why a position was closed.
type ExitReason string

const (
	ExitStopLoss     ExitReason = "STOP_LOSS_HIT"
	ExitTakeProfit   ExitReason = "TAKE_PROFIT_HIT"
	ExitStrategySell ExitReason = "STRATEGY_SELL"
	ExitEndOfData    ExitReason = "EOD_CLOSE"
)

// Position is one open holding. At most one Position per symbol exists
// at a time; it is created by Open and removed only by Close.
type Position struct {
	Symbol     string
	Quantity   float64
	EntryPrice float64
	EntryTime  time.Time
	StopLoss   float64 // absolute price, 0 = disabled
	TakeProfit float64 // absolute price, +Inf = disabled
	OrderID    string
}

// Trade is the immutable record of a completed round trip.
type Trade struct {
	Symbol     string
	EntryTime  time.Time
	EntryPrice float64
	ExitTime   time.Time
	ExitPrice  float64
	Quantity   float64
	PnL        float64
	Reason     ExitReason
}

// EquityPoint is one portfolio-value sample. The equity curve is an
// append-only, time-ordered sequence of these.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// Thresholds converts percent offsets into absolute exit prices at
// entry. A non-positive percentage disables the corresponding threshold:
// stop-loss disabled is 0, take-profit disabled is +Inf.
func Thresholds(entry, stopLossPct, takeProfitPct float64) (stop, take float64) {
	stop = 0
	if stopLossPct > 0 {
		stop = entry * (1 - stopLossPct/100)
	}
	take = math.Inf(1)
	if takeProfitPct > 0 {
		take = entry * (1 + takeProfitPct/100)
	}
	return stop, take
}

// FullAllocationQty sizes a position by consuming all available cash.
// Fractional shares are permitted. This is the simulation default.
func FullAllocationQty(cash, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return cash / price
}

// FractionalCapitalQty sizes a position from a fixed percentage of
// available cash, rounded down to whole shares. This is the live
// default; a result of 0 means the open must be refused.
func FractionalCapitalQty(cash, capitalPct, price float64) float64 {
	if price <= 0 {
		return 0
	}
	return math.Floor(cash * (capitalPct / 100) / price)
}

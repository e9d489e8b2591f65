// Package risk evaluates open positions against their stop-loss and
// take-profit thresholds. Checks are read-only; closing is always done
// by the ledger.
package risk

import (
	"math"

	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/portfolio"
)

// Exit describes a triggered threshold: the price to fill at and why.
type Exit struct {
	Price  float64
	Reason portfolio.ExitReason
}

// CheckBar tests a position against one bar's range. Stop-loss is
// evaluated first, so when both thresholds are breached within the same
// bar the stop wins. The fill is at the threshold price exactly, even
// when the bar gaps through it — an optimistic-fill assumption that is
// part of the reported performance semantics.
func CheckBar(p portfolio.Position, bar market.Bar) (Exit, bool) {
	if p.StopLoss > 0 && bar.Low <= p.StopLoss {
		return Exit{Price: p.StopLoss, Reason: portfolio.ExitStopLoss}, true
	}
	if !math.IsInf(p.TakeProfit, 1) && bar.High >= p.TakeProfit {
		return Exit{Price: p.TakeProfit, Reason: portfolio.ExitTakeProfit}, true
	}
	return Exit{}, false
}

// CheckPrice tests a position against a single last traded price, as
// seen by the live loop. The fill is at that traded price.
func CheckPrice(p portfolio.Position, ltp float64) (Exit, bool) {
	if p.StopLoss > 0 && ltp <= p.StopLoss {
		return Exit{Price: ltp, Reason: portfolio.ExitStopLoss}, true
	}
	if !math.IsInf(p.TakeProfit, 1) && ltp >= p.TakeProfit {
		return Exit{Price: ltp, Reason: portfolio.ExitTakeProfit}, true
	}
	return Exit{}, false
}

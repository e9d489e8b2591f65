package backtest

import (
	"math"

	"github.com/rustyeddy/intraday/portfolio"
)

// DefaultAnnualization converts per-bar sharpe to annualized assuming
// hourly bars: 252 trading days of 6.5 hours.
var DefaultAnnualization = math.Sqrt(252 * 6.5)

// Report is the standardized performance summary of one run. It is
// derived from the ledger outputs and never mutated afterwards.
type Report struct {
	InitialCapital float64
	FinalEquity    float64
	NetPnL         float64
	TotalReturnPct float64
	TotalTrades    int
	WinRatePct     float64
	MaxDrawdownPct float64
	SharpeRatio    float64
}

// Calculate derives the report from an equity curve and trade log.
// Every degenerate input (no trades, empty curve, zero variance) yields
// a zero statistic rather than an error.
func Calculate(initialCapital float64, equity []portfolio.EquityPoint, trades []portfolio.Trade, annualization float64) Report {
	final := initialCapital
	if len(equity) > 0 {
		final = equity[len(equity)-1].Value
	}

	r := Report{
		InitialCapital: initialCapital,
		FinalEquity:    final,
		NetPnL:         final - initialCapital,
		TotalTrades:    len(trades),
	}
	if initialCapital != 0 {
		r.TotalReturnPct = (final/initialCapital - 1) * 100
	}

	if len(trades) > 0 {
		wins := 0
		for _, t := range trades {
			if t.PnL > 0 {
				wins++
			}
		}
		r.WinRatePct = float64(wins) / float64(len(trades)) * 100
	}

	r.MaxDrawdownPct = maxDrawdownPct(equity)
	r.SharpeRatio = sharpe(equity, annualization)
	return r
}

// maxDrawdownPct is the worst percentage decline from the running peak,
// as a negative number (0 for an empty or non-declining curve).
func maxDrawdownPct(equity []portfolio.EquityPoint) float64 {
	if len(equity) == 0 {
		return 0
	}

	peak := equity[0].Value
	worst := 0.0
	for _, p := range equity {
		if p.Value > peak {
			peak = p.Value
		}
		if peak <= 0 {
			continue
		}
		dd := (p.Value - peak) / peak * 100
		if dd < worst {
			worst = dd
		}
	}
	return worst
}

// sharpe annualizes mean/stdev of successive percentage changes of the
// equity curve. Fewer than two returns or zero variance yields 0.
func sharpe(equity []portfolio.EquityPoint, annualization float64) float64 {
	var returns []float64
	for i := 1; i < len(equity); i++ {
		prev := equity[i-1].Value
		if prev == 0 {
			returns = append(returns, 0)
			continue
		}
		returns = append(returns, (equity[i].Value-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}

	mean := 0.0
	for _, v := range returns {
		mean += v
	}
	mean /= float64(len(returns))

	var ss float64
	for _, v := range returns {
		d := v - mean
		ss += d * d
	}
	std := math.Sqrt(ss / float64(len(returns)-1))
	if std == 0 {
		return 0
	}

	return mean / std * annualization
}

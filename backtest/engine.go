// Package backtest drives a single deterministic simulation over an
// ordered bar sequence and derives its performance report.
package backtest

import (
	"fmt"

	"github.com/rustyeddy/intraday/journal"
	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/portfolio"
	"github.com/rustyeddy/intraday/risk"
	"github.com/rustyeddy/intraday/strategies"
)

// Config holds the simulation parameters.
type Config struct {
	InitialCapital float64
	StopLossPct    float64 // 0 disables
	TakeProfitPct  float64 // 0 disables
	Annualization  float64 // sharpe factor; 0 means DefaultAnnualization
}

// Engine replays bars through the strategy and ledger. One engine per
// run; no state is shared between runs.
type Engine struct {
	cfg     Config
	journal journal.Journal

	ledger *portfolio.Ledger
}

func NewEngine(cfg Config, j journal.Journal) *Engine {
	if j == nil {
		j = journal.Nop{}
	}
	return &Engine{cfg: cfg, journal: j}
}

// Ledger exposes the run's trade log and equity curve after Run.
func (e *Engine) Ledger() *portfolio.Ledger { return e.ledger }

// Run simulates the strategy over bars for one symbol and returns the
// performance report. Fewer than two bars yields a zero-trade report.
// Per bar the priority order is fixed: stop-loss, take-profit, then the
// strategy signal; the first match wins and the rest are skipped.
func (e *Engine) Run(bars []market.Bar, strat strategies.Strategy, symbol string) (Report, error) {
	e.ledger = portfolio.NewLedger(e.cfg.InitialCapital, e.journal)

	if err := market.RequireColumns(bars, strat.RequiredColumns()...); err != nil {
		return Report{}, fmt.Errorf("backtest %s: %w", symbol, err)
	}

	if len(bars) < 2 {
		return Calculate(e.cfg.InitialCapital, nil, nil, e.annualization()), nil
	}

	// The curve starts at initial capital, before the first decision bar.
	e.ledger.Sample(bars[0].Time, nil)

	for i := 1; i < len(bars); i++ {
		bar := bars[i]
		window := bars[:i+1]

		// Threshold exits take priority over the strategy and finish the
		// bar: one mutation per step, one equity point per bar.
		if pos, open := e.ledger.Position(symbol); open {
			if exit, hit := risk.CheckBar(pos, bar); hit {
				if _, err := e.ledger.Close(symbol, exit.Price, bar.Time, exit.Reason); err != nil {
					return Report{}, err
				}
				continue
			}
		}

		sig, err := strat.Evaluate(window)
		if err != nil {
			return Report{}, fmt.Errorf("backtest %s: %w", symbol, err)
		}

		price := bar.Close
		_, open := e.ledger.Position(symbol)

		switch {
		case sig == strategies.Buy && !open:
			qty := portfolio.FullAllocationQty(e.ledger.Cash(), price)
			if _, err := e.ledger.Open(portfolio.OpenRequest{
				Symbol:        symbol,
				Price:         price,
				Quantity:      qty,
				StopLossPct:   e.cfg.StopLossPct,
				TakeProfitPct: e.cfg.TakeProfitPct,
				Time:          bar.Time,
			}); err != nil {
				return Report{}, err
			}

		case sig == strategies.Sell && open:
			if _, err := e.ledger.Close(symbol, price, bar.Time, portfolio.ExitStrategySell); err != nil {
				return Report{}, err
			}

		default:
			e.ledger.Sample(bar.Time, func(string) (float64, bool) {
				return price, true
			})
		}
	}

	// Force-close anything still open at the last available price so no
	// run ends with silently-abandoned state.
	if _, open := e.ledger.Position(symbol); open {
		last := bars[len(bars)-1]
		if _, err := e.ledger.Close(symbol, last.Close, last.Time, portfolio.ExitEndOfData); err != nil {
			return Report{}, err
		}
	}

	return Calculate(e.cfg.InitialCapital, e.ledger.Equity(), e.ledger.Trades(), e.annualization()), nil
}

func (e *Engine) annualization() float64 {
	if e.cfg.Annualization > 0 {
		return e.cfg.Annualization
	}
	return DefaultAnnualization
}

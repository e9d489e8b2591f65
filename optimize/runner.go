// Package optimize runs a parameter grid of independent backtests
// across a worker pool and ranks the results.
package optimize

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/rustyeddy/intraday/backtest"
	"github.com/rustyeddy/intraday/indicators"
	"github.com/rustyeddy/intraday/journal"
	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/strategies"
)

// Params is one point of the search grid.
type Params struct {
	RSIOversold   float64
	RSIOverbought float64
	BBPeriod      int
	BBStdDev      float64
}

// Grid expands per-axis candidate values into the full cartesian
// product. Empty axes fall back to a single default value.
type Grid struct {
	RSIOversold   []float64
	RSIOverbought []float64
	BBPeriod      []int
	BBStdDev      []float64
}

func (g Grid) Expand() []Params {
	oversold := g.RSIOversold
	if len(oversold) == 0 {
		oversold = []float64{30}
	}
	overbought := g.RSIOverbought
	if len(overbought) == 0 {
		overbought = []float64{70}
	}
	periods := g.BBPeriod
	if len(periods) == 0 {
		periods = []int{20}
	}
	stds := g.BBStdDev
	if len(stds) == 0 {
		stds = []float64{2.0}
	}

	var out []Params
	for _, os := range oversold {
		for _, ob := range overbought {
			for _, bp := range periods {
				for _, sd := range stds {
					out = append(out, Params{
						RSIOversold:   os,
						RSIOverbought: ob,
						BBPeriod:      bp,
						BBStdDev:      sd,
					})
				}
			}
		}
	}
	return out
}

// Task is one backtest to run: a symbol's raw bars and a parameter
// point. Bars are enriched inside the worker so each task applies its
// own indicator settings.
type Task struct {
	Symbol string
	Params Params
	Bars   []market.Bar
}

// Row is one completed backtest.
type Row struct {
	Symbol string
	Params Params
	Report backtest.Report
}

// Runner fans tasks out over a fixed worker pool. Each task gets its
// own engine and ledger; workers share nothing but the channels.
type Runner struct {
	Workers int             // 0 means max(1, NumCPU-1)
	Engine  backtest.Config // per-task simulation settings
	Log     *slog.Logger
}

// Run executes every task and returns the successful rows sorted by
// symbol then grid order, so output is deterministic regardless of
// worker scheduling. Failed tasks are logged and dropped. Cancellation
// stops feeding; in-flight tasks finish.
func (r *Runner) Run(ctx context.Context, tasks []Task) []Row {
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU() - 1
		if workers < 1 {
			workers = 1
		}
	}
	log := r.Log
	if log == nil {
		log = slog.Default()
	}

	jobs := make(chan Task)
	results := make(chan Row, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range jobs {
				row, err := r.runOne(task)
				if err != nil {
					log.Warn("grid point failed",
						"symbol", task.Symbol,
						"oversold", task.Params.RSIOversold,
						"overbought", task.Params.RSIOverbought,
						"err", err,
					)
					continue
				}
				results <- row
			}
		}()
	}

feed:
	for _, task := range tasks {
		if ctx.Err() != nil {
			break
		}
		select {
		case jobs <- task:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	close(results)

	rows := make([]Row, 0, len(tasks))
	for row := range results {
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if a.Params.RSIOversold != b.Params.RSIOversold {
			return a.Params.RSIOversold < b.Params.RSIOversold
		}
		if a.Params.RSIOverbought != b.Params.RSIOverbought {
			return a.Params.RSIOverbought < b.Params.RSIOverbought
		}
		if a.Params.BBPeriod != b.Params.BBPeriod {
			return a.Params.BBPeriod < b.Params.BBPeriod
		}
		return a.Params.BBStdDev < b.Params.BBStdDev
	})
	return rows
}

func (r *Runner) runOne(task Task) (Row, error) {
	icfg := indicators.DefaultConfig()
	icfg.BBPeriod = task.Params.BBPeriod
	icfg.BBStdDev = task.Params.BBStdDev

	bars := indicators.Enrich(task.Bars, icfg)
	strat := strategies.RSIBollinger{
		Oversold:   task.Params.RSIOversold,
		Overbought: task.Params.RSIOverbought,
	}

	engine := backtest.NewEngine(r.Engine, journal.Nop{})
	report, err := engine.Run(bars, strat, task.Symbol)
	if err != nil {
		return Row{}, err
	}
	return Row{Symbol: task.Symbol, Params: task.Params, Report: report}, nil
}

// Best returns the row with the highest sharpe ratio. Ties keep the
// earlier row in sorted order.
func Best(rows []Row) (Row, bool) {
	if len(rows) == 0 {
		return Row{}, false
	}
	best := rows[0]
	for _, row := range rows[1:] {
		if row.Report.SharpeRatio > best.Report.SharpeRatio {
			best = row
		}
	}
	return best, true
}

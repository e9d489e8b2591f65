package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rustyeddy/intraday/backtest"
	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/optimize"
	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search a strategy parameter grid over multiple symbols",
	Long: `Optimize backtests every combination of the given parameter values
for every symbol, ranks the results by sharpe ratio and exports them
to CSV.

Example:
  intraday optimize --data ./bars --symbols RELIANCE,TCS \
    --oversold 25,30,35 --overbought 65,70,75 --bb-period 14,20`,
	RunE: runOptimize,
}

var (
	optDataDir    string
	optSymbols    []string
	optOversold   []float64
	optOverbought []float64
	optBBPeriod   []int
	optBBStdDev   []float64
	optWorkers    int
	optOutput     string
)

func init() {
	rootCmd.AddCommand(optimizeCmd)

	optimizeCmd.Flags().StringVarP(&optDataDir, "data", "d", "", "directory of <symbol>.csv bar files (required)")
	optimizeCmd.Flags().StringSliceVarP(&optSymbols, "symbols", "s", nil, "symbols to optimize (required)")

	optimizeCmd.Flags().Float64SliceVar(&optOversold, "oversold", []float64{25, 30, 35}, "RSI oversold candidates")
	optimizeCmd.Flags().Float64SliceVar(&optOverbought, "overbought", []float64{65, 70, 75}, "RSI overbought candidates")
	optimizeCmd.Flags().IntSliceVar(&optBBPeriod, "bb-period", []int{20}, "Bollinger period candidates")
	optimizeCmd.Flags().Float64SliceVar(&optBBStdDev, "bb-std", []float64{2.0}, "Bollinger std-dev candidates")

	optimizeCmd.Flags().IntVarP(&optWorkers, "workers", "w", 0, "worker count (0 = CPU count - 1)")
	optimizeCmd.Flags().StringVarP(&optOutput, "output", "o", "optimization_results.csv", "results CSV path")

	optimizeCmd.MarkFlagRequired("data")
	optimizeCmd.MarkFlagRequired("symbols")
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	grid := optimize.Grid{
		RSIOversold:   optOversold,
		RSIOverbought: optOverbought,
		BBPeriod:      optBBPeriod,
		BBStdDev:      optBBStdDev,
	}.Expand()

	var tasks []optimize.Task
	for _, symbol := range optSymbols {
		symbol = strings.TrimSpace(symbol)
		bars, err := market.LoadCSV(filepath.Join(optDataDir, symbol+".csv"))
		if err != nil {
			return fmt.Errorf("load bars for %s: %w", symbol, err)
		}
		for _, p := range grid {
			tasks = append(tasks, optimize.Task{Symbol: symbol, Params: p, Bars: bars})
		}
	}

	fmt.Printf("Optimizing %d symbols x %d grid points (%d backtests)\n",
		len(optSymbols), len(grid), len(tasks))

	runner := optimize.Runner{
		Workers: optWorkers,
		Engine: backtest.Config{
			InitialCapital: cfg.Account.InitialCapital,
			StopLossPct:    cfg.Risk.StopLossPct,
			TakeProfitPct:  cfg.Risk.TakeProfitPct,
			Annualization:  cfg.Performance.Annualization,
		},
		Log: log,
	}
	rows := runner.Run(cmd.Context(), tasks)
	if len(rows) == 0 {
		return fmt.Errorf("no grid point completed successfully")
	}

	out, err := os.Create(optOutput)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer out.Close()
	if err := optimize.WriteCSV(out, rows); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	best, _ := optimize.Best(rows)
	fmt.Printf("\nResults written to %s (%d rows)\n\n", optOutput, len(rows))
	fmt.Printf("Best by sharpe: %s oversold=%s overbought=%s bb=%d/%s\n",
		best.Symbol,
		strconv.FormatFloat(best.Params.RSIOversold, 'f', -1, 64),
		strconv.FormatFloat(best.Params.RSIOverbought, 'f', -1, 64),
		best.Params.BBPeriod,
		strconv.FormatFloat(best.Params.BBStdDev, 'f', -1, 64),
	)
	backtest.PrintReport(os.Stdout, best.Symbol, best.Report)
	return nil
}

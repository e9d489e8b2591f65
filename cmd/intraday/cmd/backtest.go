package cmd

import (
	"fmt"
	"os"

	"github.com/rustyeddy/intraday/backtest"
	"github.com/rustyeddy/intraday/indicators"
	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/strategies"
	"github.com/spf13/cobra"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a backtest over historical bar data",
	Long: `Backtest replays a CSV of OHLCV bars through a strategy and prints
the performance report.

Supported strategies:
  - noop: Does nothing (baseline test)
  - rsi-bb: RSI + Bollinger band confluence

Example:
  intraday backtest --bars data/reliance.csv --symbol RELIANCE`,
	RunE: runBacktest,
}

var (
	btBarsPath string
	btSymbol   string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btBarsPath, "bars", "b", "", "path to bar CSV (time,open,high,low,close[,volume]) (required)")
	backtestCmd.Flags().StringVarP(&btSymbol, "symbol", "s", "", "symbol name for the run (required)")

	backtestCmd.MarkFlagRequired("bars")
	backtestCmd.MarkFlagRequired("symbol")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	bars, err := market.LoadCSV(btBarsPath)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	icfg := indicators.DefaultConfig()
	icfg.RSIPeriod = cfg.Strategy.RSIPeriod
	icfg.BBPeriod = cfg.Strategy.BBPeriod
	icfg.BBStdDev = cfg.Strategy.BBStdDev
	enriched := indicators.Enrich(bars, icfg)

	strat, err := strategies.ByName(cfg.Strategy.Name, strategies.Params{
		RSIOversold:   cfg.Strategy.RSIOversold,
		RSIOverbought: cfg.Strategy.RSIOverbought,
	})
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	engine := backtest.NewEngine(backtest.Config{
		InitialCapital: cfg.Account.InitialCapital,
		StopLossPct:    cfg.Risk.StopLossPct,
		TakeProfitPct:  cfg.Risk.TakeProfitPct,
		Annualization:  cfg.Performance.Annualization,
	}, j)

	fmt.Printf("Running backtest with strategy: %s\n", strat.Name())
	fmt.Printf("  Bars: %s (%d rows, %d after indicator warmup)\n", btBarsPath, len(bars), len(enriched))

	report, err := engine.Run(enriched, strat, btSymbol)
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	backtest.PrintReport(os.Stdout, btSymbol, report)
	return nil
}

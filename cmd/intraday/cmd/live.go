package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rustyeddy/intraday/broker/sim"
	"github.com/rustyeddy/intraday/indicators"
	"github.com/rustyeddy/intraday/journal"
	"github.com/rustyeddy/intraday/live"
	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/portfolio"
	"github.com/rustyeddy/intraday/strategies"
	"github.com/spf13/cobra"
)

var liveCmd = &cobra.Command{
	Use:   "live",
	Short: "Run the live trading loop in paper mode",
	Long: `Live polls the watchlist, manages stop-loss / take-profit exits and
opens positions on strategy signals. Orders are routed to a paper
gateway fed by replayed bar data; Ctrl-C closes all open positions
and exits.

Example:
  intraday live --config trading.yaml --data ./bars`,
	RunE: runLive,
}

var liveDataDir string

func init() {
	rootCmd.AddCommand(liveCmd)

	liveCmd.Flags().StringVarP(&liveDataDir, "data", "d", "", "directory of <symbol>.csv bar files for the paper feed (required)")
	liveCmd.MarkFlagRequired("data")
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if len(cfg.Live.Watchlist) == 0 {
		return fmt.Errorf("live.watchlist is empty; set it in the config file")
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	interval, err := cfg.Live.ParsePollInterval()
	if err != nil {
		return err
	}

	icfg := indicators.DefaultConfig()
	icfg.RSIPeriod = cfg.Strategy.RSIPeriod
	icfg.BBPeriod = cfg.Strategy.BBPeriod
	icfg.BBStdDev = cfg.Strategy.BBStdDev

	gateway := sim.New()
	history := make(map[string][]market.Bar, len(cfg.Live.Watchlist))
	for _, symbol := range cfg.Live.Watchlist {
		bars, err := market.LoadCSV(filepath.Join(liveDataDir, symbol+".csv"))
		if err != nil {
			return fmt.Errorf("load bars for %s: %w", symbol, err)
		}
		enriched := indicators.Enrich(bars, icfg)
		if len(enriched) < cfg.Live.WindowBars {
			return fmt.Errorf("%s: %d bars after warmup, window needs %d", symbol, len(enriched), cfg.Live.WindowBars)
		}
		history[symbol] = enriched
		gateway.SetPrice(symbol, enriched[0].Close)
	}
	source := &paperFeed{replay: market.NewReplay(history), gateway: gateway}

	strat, err := strategies.ByName(cfg.Strategy.Name, strategies.Params{
		RSIOversold:   cfg.Strategy.RSIOversold,
		RSIOverbought: cfg.Strategy.RSIOverbought,
	})
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	j, err := openJournal(cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	if cfg.Live.SnapshotFile != "" {
		snap, err := journal.NewSnapshotFile(cfg.Live.SnapshotFile)
		if err != nil {
			return fmt.Errorf("snapshot file: %w", err)
		}
		j = journal.Tee{j, snap}
	}

	ledger := portfolio.NewLedger(cfg.Account.InitialCapital, j)

	trader, err := live.New(live.Config{
		Watchlist:          cfg.Live.Watchlist,
		MaxActivePositions: cfg.Risk.MaxActivePositions,
		CapitalPerTradePct: cfg.Risk.CapitalPerTradePct,
		StopLossPct:        cfg.Risk.StopLossPct,
		TakeProfitPct:      cfg.Risk.TakeProfitPct,
		PollInterval:       interval,
		SnapshotEvery:      cfg.Live.SnapshotEvery,
		WindowBars:         cfg.Live.WindowBars,
	}, gateway, source, strat, ledger, j, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return trader.Run(ctx)
}

// paperFeed serves replayed bars and mirrors each served window's last
// close into the paper gateway, so quotes track the feed.
type paperFeed struct {
	replay  *market.Replay
	gateway *sim.Gateway
}

func (p *paperFeed) Bars(ctx context.Context, symbol string, n int) ([]market.Bar, error) {
	window, err := p.replay.Bars(ctx, symbol, n)
	if err != nil {
		return nil, err
	}
	p.gateway.SetPrice(symbol, window[len(window)-1].Close)
	return window, nil
}

// Package live drives the polling trading loop: risk-check open
// positions against fresh prices, scan the watchlist for entries, and
// publish portfolio snapshots for observers.
package live

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/intraday/broker"
	"github.com/rustyeddy/intraday/journal"
	"github.com/rustyeddy/intraday/market"
	"github.com/rustyeddy/intraday/portfolio"
	"github.com/rustyeddy/intraday/risk"
	"github.com/rustyeddy/intraday/strategies"
)

// Config holds the live loop parameters.
type Config struct {
	Watchlist          []string
	MaxActivePositions int
	CapitalPerTradePct float64
	StopLossPct        float64
	TakeProfitPct      float64
	PollInterval       time.Duration
	SnapshotEvery      int // publish a snapshot every Nth tick
	WindowBars         int // bars fetched per watchlist scan
}

func (c Config) validate() error {
	if len(c.Watchlist) == 0 {
		return fmt.Errorf("live: watchlist is empty")
	}
	if c.MaxActivePositions <= 0 {
		return fmt.Errorf("live: max_active_positions must be positive")
	}
	if c.CapitalPerTradePct <= 0 || c.CapitalPerTradePct > 100 {
		return fmt.Errorf("live: capital_per_trade_pct must be in (0, 100]")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("live: poll_interval must be positive")
	}
	if c.WindowBars < 2 {
		return fmt.Errorf("live: window_bars must be at least 2")
	}
	return nil
}

// Trader is the live orchestrator. Within a run it is single-threaded:
// the only yield point is the inter-tick sleep.
type Trader struct {
	cfg     Config
	gateway broker.Gateway
	source  market.BarSource
	strat   strategies.Strategy
	ledger  *portfolio.Ledger
	journal journal.Journal
	log     *slog.Logger

	ticks int
}

// New builds a trader. The gateway capability is checked here, once; a
// nil gateway is ErrDisconnected rather than a latent panic mid-loop.
func New(cfg Config, gw broker.Gateway, src market.BarSource, strat strategies.Strategy,
	ledger *portfolio.Ledger, j journal.Journal, log *slog.Logger) (*Trader, error) {

	if gw == nil {
		return nil, broker.ErrDisconnected
	}
	if src == nil {
		return nil, fmt.Errorf("live: bar source is required")
	}
	if strat == nil {
		return nil, fmt.Errorf("live: strategy is required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("live: ledger is required")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if j == nil {
		j = journal.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}

	return &Trader{
		cfg:     cfg,
		gateway: gw,
		source:  src,
		strat:   strat,
		ledger:  ledger,
		journal: j,
		log:     log,
	}, nil
}

// Run polls until ctx is cancelled. Any panic inside a tick is
// recovered and logged; the loop only stops on cancellation, which
// force-closes every open position before returning.
func (t *Trader) Run(ctx context.Context) error {
	t.log.Info("live trader running",
		"watchlist", len(t.cfg.Watchlist),
		"max_positions", t.cfg.MaxActivePositions,
		"stop_loss_pct", t.cfg.StopLossPct,
		"take_profit_pct", t.cfg.TakeProfitPct,
	)

	// Publish immediately so observers have data before the first tick.
	t.publishSnapshot(ctx)

	ticker := time.NewTicker(t.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.log.Info("shutdown requested, closing open positions")
			t.closeAll()
			return nil
		case <-ticker.C:
			t.tick(ctx)
		}
	}
}

// tick is one pass of the loop body. Errors and panics never escape;
// the process must not crash on a transient failure.
func (t *Trader) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			t.log.Error("tick panic recovered", "panic", r)
		}
	}()

	t.managePositions(ctx)

	if t.ledger.OpenCount() < t.cfg.MaxActivePositions {
		t.scanWatchlist(ctx)
	}

	t.ticks++
	if t.cfg.SnapshotEvery > 0 && t.ticks%t.cfg.SnapshotEvery == 0 {
		t.publishSnapshot(ctx)
	} else {
		t.log.Info("tick complete",
			"positions", t.ledger.OpenCount(),
			"cash", t.ledger.Cash(),
		)
	}
}

// managePositions risk-checks every open position against a freshly
// fetched price. A failed fetch skips that symbol for this tick only;
// no assumption is made about how a stale price moved.
func (t *Trader) managePositions(ctx context.Context) {
	for _, symbol := range t.ledger.Symbols() {
		pos, ok := t.ledger.Position(symbol)
		if !ok {
			continue
		}

		ltp, err := t.gateway.GetLastPrice(ctx, symbol)
		if err != nil {
			t.log.Warn("price fetch failed, skipping risk check", "symbol", symbol, "err", err)
			continue
		}

		if exit, hit := risk.CheckPrice(pos, ltp); hit {
			t.log.Info("exit threshold hit", "symbol", symbol, "reason", string(exit.Reason), "price", ltp)
			t.sell(ctx, symbol, pos, exit.Price, exit.Reason)
		}
	}
}

// scanWatchlist looks for BUY signals and opens positions up to
// capacity. Symbols that already have a position are skipped.
func (t *Trader) scanWatchlist(ctx context.Context) {
	for _, symbol := range t.cfg.Watchlist {
		if _, open := t.ledger.Position(symbol); open {
			continue
		}

		window, err := t.source.Bars(ctx, symbol, t.cfg.WindowBars)
		if err != nil {
			t.log.Warn("bar fetch failed", "symbol", symbol, "err", err)
			continue
		}
		if len(window) == 0 {
			continue
		}
		if err := market.RequireColumns(window, t.strat.RequiredColumns()...); err != nil {
			t.log.Error("bar stream missing required columns", "symbol", symbol, "err", err)
			continue
		}

		sig, err := t.strat.Evaluate(window)
		if err != nil {
			t.log.Error("strategy evaluation failed", "symbol", symbol, "err", err)
			continue
		}
		if sig != strategies.Buy {
			continue
		}

		t.buy(ctx, symbol, window[len(window)-1].Close)

		if t.ledger.OpenCount() >= t.cfg.MaxActivePositions {
			t.log.Info("max active positions reached, pausing scan")
			return
		}
	}
}

// buy sizes, routes and records an entry. An order failure leaves the
// ledger untouched.
func (t *Trader) buy(ctx context.Context, symbol string, price float64) {
	qty := portfolio.FractionalCapitalQty(t.ledger.Cash(), t.cfg.CapitalPerTradePct, price)
	if qty <= 0 {
		t.log.Warn("not enough cash for one share", "symbol", symbol, "price", price)
		return
	}

	res, err := t.gateway.PlaceOrder(ctx, broker.OrderRequest{
		Symbol:   symbol,
		Quantity: qty,
		Type:     broker.Market,
		Side:     broker.SideBuy,
	})
	if err != nil || res.Status != broker.StatusSuccess {
		t.log.Error("buy order not filled", "symbol", symbol, "status", string(res.Status), "err", err)
		return
	}

	pos, err := t.ledger.Open(portfolio.OpenRequest{
		Symbol:        symbol,
		Price:         price,
		Quantity:      qty,
		StopLossPct:   t.cfg.StopLossPct,
		TakeProfitPct: t.cfg.TakeProfitPct,
		Time:          time.Now(),
		OrderID:       res.OrderID,
	})
	if err != nil {
		t.log.Error("ledger open failed after fill", "symbol", symbol, "err", err)
		return
	}

	t.log.Info("position opened",
		"symbol", symbol,
		"quantity", pos.Quantity,
		"entry", pos.EntryPrice,
		"stop_loss", pos.StopLoss,
		"take_profit", pos.TakeProfit,
	)
}

// sell routes the exit order and closes the position in the ledger. An
// order failure keeps the position open; it will be re-checked next
// tick.
func (t *Trader) sell(ctx context.Context, symbol string, pos portfolio.Position, price float64, reason portfolio.ExitReason) {
	res, err := t.gateway.PlaceOrder(ctx, broker.OrderRequest{
		Symbol:   symbol,
		Quantity: pos.Quantity,
		Type:     broker.Market,
		Side:     broker.SideSell,
	})
	if err != nil || res.Status != broker.StatusSuccess {
		t.log.Error("sell order not filled", "symbol", symbol, "status", string(res.Status), "err", err)
		return
	}

	trade, err := t.ledger.Close(symbol, price, time.Now(), reason)
	if err != nil {
		t.log.Error("ledger close failed", "symbol", symbol, "err", err)
		return
	}

	t.log.Info("position closed",
		"symbol", symbol,
		"reason", string(trade.Reason),
		"exit", trade.ExitPrice,
		"pnl", trade.PnL,
	)
}

// closeAll force-closes every open position on shutdown. Order routing
// is attempted but the ledger is closed regardless: no run may end with
// silently-abandoned open state. The exit price is the freshest quote,
// falling back to the entry price when no quote is available.
func (t *Trader) closeAll() {
	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.PollInterval)
	defer cancel()

	for _, symbol := range t.ledger.Symbols() {
		pos, ok := t.ledger.Position(symbol)
		if !ok {
			continue
		}

		price := pos.EntryPrice
		if ltp, err := t.gateway.GetLastPrice(ctx, symbol); err == nil {
			price = ltp
		}

		if _, err := t.gateway.PlaceOrder(ctx, broker.OrderRequest{
			Symbol:   symbol,
			Quantity: pos.Quantity,
			Type:     broker.Market,
			Side:     broker.SideSell,
		}); err != nil {
			t.log.Error("shutdown sell order failed", "symbol", symbol, "err", err)
		}

		trade, err := t.ledger.Close(symbol, price, time.Now(), portfolio.ExitEndOfData)
		if err != nil {
			t.log.Error("shutdown close failed", "symbol", symbol, "err", err)
			continue
		}
		t.log.Info("position force-closed", "symbol", symbol, "pnl", trade.PnL)
	}

	t.publishSnapshot(ctx)
}

// publishSnapshot reports the marked-to-market portfolio to the journal
// and the log.
func (t *Trader) publishSnapshot(ctx context.Context) {
	value := t.ledger.MarkToMarket(func(symbol string) (float64, bool) {
		ltp, err := t.gateway.GetLastPrice(ctx, symbol)
		if err != nil {
			return 0, false
		}
		return ltp, true
	})

	initial := t.ledger.InitialCapital()
	pnl := value - initial
	pnlPct := 0.0
	if initial != 0 {
		pnlPct = pnl / initial * 100
	}

	var open []journal.OpenPosition
	for _, symbol := range t.ledger.Symbols() {
		pos, ok := t.ledger.Position(symbol)
		if !ok {
			continue
		}
		open = append(open, journal.OpenPosition{
			Symbol:     pos.Symbol,
			Quantity:   pos.Quantity,
			EntryPrice: pos.EntryPrice,
			EntryTime:  pos.EntryTime,
			StopLoss:   pos.StopLoss,
			TakeProfit: pos.TakeProfit,
		})
	}

	snap := journal.Snapshot{
		Time:           time.Now(),
		PortfolioValue: value,
		PnL:            pnl,
		PnLPct:         pnlPct,
		Cash:           t.ledger.Cash(),
		OpenPositions:  open,
	}
	if err := t.journal.PublishSnapshot(snap); err != nil {
		t.log.Error("snapshot publish failed", "err", err)
	}

	t.log.Info("portfolio status",
		"value", value,
		"pnl", pnl,
		"pnl_pct", pnlPct,
		"cash", t.ledger.Cash(),
		"positions", len(open),
	)
}

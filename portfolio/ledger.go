// Package portfolio owns the mutable trading state: cash, the open
// position table, the trade log and the equity curve. All mutation goes
// through Open and Close; nothing else aliases the position map.
package portfolio

import (
	"fmt"
	"sort"
	"time"

	"github.com/rustyeddy/intraday/journal"
)

var (
	// ErrAlreadyOpen is returned when a second position is opened for a
	// symbol that already has one.
	ErrAlreadyOpen = fmt.Errorf("position already open")

	// ErrNotOpen is returned when closing a symbol with no open position.
	ErrNotOpen = fmt.Errorf("no open position")

	// ErrBadQuantity is returned when sizing resolves to a quantity that
	// cannot be opened (zero, negative, or more than cash can cover).
	ErrBadQuantity = fmt.Errorf("invalid quantity")
)

// OpenRequest carries everything needed to open a position.
type OpenRequest struct {
	Symbol        string
	Price         float64
	Quantity      float64
	StopLossPct   float64
	TakeProfitPct float64
	Time          time.Time
	OrderID       string
}

// Ledger is the single owner of portfolio state for one run. It is not
// safe for concurrent use; each run (simulated or live) drives exactly
// one goroutine through it.
type Ledger struct {
	initial   float64
	cash      float64
	positions map[string]*Position
	trades    []Trade
	equity    []EquityPoint
	journal   journal.Journal
}

// NewLedger creates a ledger with the given starting capital. A nil
// journal disables trade persistence.
func NewLedger(initialCapital float64, j journal.Journal) *Ledger {
	if j == nil {
		j = journal.Nop{}
	}
	return &Ledger{
		initial:   initialCapital,
		cash:      initialCapital,
		positions: make(map[string]*Position),
		journal:   j,
	}
}

func (l *Ledger) InitialCapital() float64 { return l.initial }
func (l *Ledger) Cash() float64           { return l.cash }
func (l *Ledger) OpenCount() int          { return len(l.positions) }

// Position returns a copy of the open position for symbol, if any.
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Symbols returns the open symbols in sorted order, so iteration over
// the position table is deterministic.
func (l *Ledger) Symbols() []string {
	out := make([]string, 0, len(l.positions))
	for s := range l.positions {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Trades returns the trade log. The slice is shared; callers must not
// modify it.
func (l *Ledger) Trades() []Trade { return l.trades }

// Equity returns the equity curve. The slice is shared; callers must
// not modify it.
func (l *Ledger) Equity() []EquityPoint { return l.equity }

// Open creates a position, consuming quantity*price cash, and appends
// one equity point. Stop and take thresholds are fixed at entry.
func (l *Ledger) Open(req OpenRequest) (Position, error) {
	if _, ok := l.positions[req.Symbol]; ok {
		return Position{}, fmt.Errorf("open %s: %w", req.Symbol, ErrAlreadyOpen)
	}
	if req.Quantity <= 0 {
		return Position{}, fmt.Errorf("open %s: %w: %g", req.Symbol, ErrBadQuantity, req.Quantity)
	}

	cost := req.Quantity * req.Price
	if cost > l.cash*(1+1e-9) {
		return Position{}, fmt.Errorf("open %s: %w: cost %.2f exceeds cash %.2f",
			req.Symbol, ErrBadQuantity, cost, l.cash)
	}

	stop, take := Thresholds(req.Price, req.StopLossPct, req.TakeProfitPct)
	pos := &Position{
		Symbol:     req.Symbol,
		Quantity:   req.Quantity,
		EntryPrice: req.Price,
		EntryTime:  req.Time,
		StopLoss:   stop,
		TakeProfit: take,
		OrderID:    req.OrderID,
	}

	l.cash -= cost
	if l.cash < 0 {
		l.cash = 0 // rounding residue from full allocation
	}
	l.positions[req.Symbol] = pos

	l.appendEquity(req.Time, l.valueAtEntry())
	return *pos, nil
}

// Close removes the position, returns cash at the exit price, appends
// exactly one Trade and one equity point, and records the trade in the
// journal. A journal failure is reported but does not undo the close.
func (l *Ledger) Close(symbol string, exitPrice float64, ts time.Time, reason ExitReason) (Trade, error) {
	pos, ok := l.positions[symbol]
	if !ok {
		return Trade{}, fmt.Errorf("close %s: %w", symbol, ErrNotOpen)
	}
	delete(l.positions, symbol)

	l.cash += pos.Quantity * exitPrice

	trade := Trade{
		Symbol:     symbol,
		EntryTime:  pos.EntryTime,
		EntryPrice: pos.EntryPrice,
		ExitTime:   ts,
		ExitPrice:  exitPrice,
		Quantity:   pos.Quantity,
		PnL:        (exitPrice - pos.EntryPrice) * pos.Quantity,
		Reason:     reason,
	}
	l.trades = append(l.trades, trade)
	l.appendEquity(ts, l.valueAtEntry())

	if err := l.journal.RecordTrade(journal.TradeRecord{
		Symbol:     trade.Symbol,
		EntryTime:  trade.EntryTime,
		EntryPrice: trade.EntryPrice,
		ExitTime:   trade.ExitTime,
		ExitPrice:  trade.ExitPrice,
		Quantity:   trade.Quantity,
		PnL:        trade.PnL,
		Reason:     string(trade.Reason),
	}); err != nil {
		return trade, fmt.Errorf("journal trade %s: %w", symbol, err)
	}
	return trade, nil
}

// MarkToMarket values the portfolio with the supplied price lookup. A
// missing price holds the position at its entry price, the conservative
// fallback. It never fails.
func (l *Ledger) MarkToMarket(priceOf func(symbol string) (float64, bool)) float64 {
	value := l.cash
	for sym, pos := range l.positions {
		price := pos.EntryPrice
		if priceOf != nil {
			if p, ok := priceOf(sym); ok {
				price = p
			}
		}
		value += pos.Quantity * price
	}
	return value
}

// Sample appends one equity point valued with the supplied price lookup
// and returns it. Orchestrators call this once per bar or tick that did
// not already mutate the ledger.
func (l *Ledger) Sample(ts time.Time, priceOf func(symbol string) (float64, bool)) EquityPoint {
	pt := EquityPoint{Time: ts, Value: l.MarkToMarket(priceOf)}
	l.equity = append(l.equity, pt)
	return pt
}

// valueAtEntry is MarkToMarket with every open position held at entry
// price, used for the equity points taken inside Open/Close where only
// the transacted symbol has a fresh price.
func (l *Ledger) valueAtEntry() float64 {
	return l.MarkToMarket(nil)
}

func (l *Ledger) appendEquity(ts time.Time, v float64) {
	l.equity = append(l.equity, EquityPoint{Time: ts, Value: v})
}

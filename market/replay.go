package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrExhausted is returned by a replay source once a symbol's history
// has been fully served.
var ErrExhausted = errors.New("bar history exhausted")

// Replay serves historical bars as a live-like feed: each Bars call
// returns the trailing window ending one bar later than the previous
// call. It backs paper trading runs where no real feed exists.
type Replay struct {
	mu      sync.Mutex
	history map[string][]Bar
	cursor  map[string]int
}

func NewReplay(history map[string][]Bar) *Replay {
	return &Replay{
		history: history,
		cursor:  make(map[string]int),
	}
}

// Bars returns the last n bars ending at the symbol's cursor, then
// advances the cursor. The first call returns bars [0, n); once the
// cursor passes the end of history every call returns ErrExhausted.
func (r *Replay) Bars(ctx context.Context, symbol string, n int) ([]Bar, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hist, ok := r.history[symbol]
	if !ok {
		return nil, fmt.Errorf("no history for %q", symbol)
	}
	if n <= 0 || len(hist) < n {
		return nil, fmt.Errorf("history for %q has %d bars, need %d", symbol, len(hist), n)
	}

	end := n
	if prev, started := r.cursor[symbol]; started {
		end = prev + 1
	}
	if end > len(hist) {
		return nil, fmt.Errorf("%q: %w", symbol, ErrExhausted)
	}
	r.cursor[symbol] = end

	window := make([]Bar, n)
	copy(window, hist[end-n:end])
	return window, nil
}

// Latest returns the close of the bar at the symbol's current cursor
// position, the price a quote feed would report alongside the window
// most recently served.
func (r *Replay) Latest(symbol string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	hist, ok := r.history[symbol]
	if !ok || len(hist) == 0 {
		return 0, false
	}
	end, started := r.cursor[symbol]
	if !started {
		return hist[0].Close, true
	}
	return hist[end-1].Close, true
}

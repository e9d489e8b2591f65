package strategies

import (
	"fmt"
	"strings"

	"github.com/rustyeddy/intraday/market"
)

// Signal is a trading decision for the window's last bar.
type Signal int

const (
	Hold Signal = iota
	Buy
	Sell
)

func (s Signal) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Strategy turns a window of bars into a Signal. Implementations must be
// stateless across calls: the decision depends only on the window's last
// row, so live and simulated runs produce identical signals.
type Strategy interface {
	Name() string
	RequiredColumns() []string
	Evaluate(window []market.Bar) (Signal, error)
}

// Params are the recognized strategy options with their defaults. This
// replaces open-ended keyword overrides with an explicit structure.
type Params struct {
	RSIOversold   float64
	RSIOverbought float64
}

func DefaultParams() Params {
	return Params{RSIOversold: 30, RSIOverbought: 70}
}

// ByName constructs a strategy from its registry name.
func ByName(name string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{}, nil

	case "rsi-bb", "rsibb":
		return RSIBollinger{
			Oversold:   p.RSIOversold,
			Overbought: p.RSIOverbought,
		}, nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, rsi-bb)", name)
	}
}

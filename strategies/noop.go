package strategies

import "github.com/rustyeddy/intraday/market"

// Noop never trades. Useful as a baseline.
type Noop struct{}

func (Noop) Name() string              { return "noop" }
func (Noop) RequiredColumns() []string { return nil }
func (Noop) Evaluate([]market.Bar) (Signal, error) {
	return Hold, nil
}

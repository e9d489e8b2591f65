package market

import "context"

// BarSource supplies an ordered, timestamp-ascending window of bars for a
// symbol. Implementations are expected to attach whatever indicator
// columns their consumer requires before returning.
type BarSource interface {
	Bars(ctx context.Context, symbol string, n int) ([]Bar, error)
}

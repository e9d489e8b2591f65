// Package broker defines the execution gateway the live loop trades
// through. The core never talks to a venue directly.
package broker

import (
	"context"
	"errors"
)

type OrderSide string

const (
	SideBuy  OrderSide = "BUY"
	SideSell OrderSide = "SELL"
)

type OrderType string

const Market OrderType = "MARKET"

type OrderStatus string

const (
	StatusSuccess OrderStatus = "success"
	StatusFailed  OrderStatus = "failed"
	StatusError   OrderStatus = "error"
)

type OrderRequest struct {
	Symbol   string
	Quantity float64
	Type     OrderType
	Side     OrderSide
}

type OrderResult struct {
	Status  OrderStatus
	OrderID string
}

// Gateway places orders and reports last traded prices. Either call may
// fail transiently; callers log and carry on without mutating state.
type Gateway interface {
	PlaceOrder(ctx context.Context, req OrderRequest) (OrderResult, error)
	GetLastPrice(ctx context.Context, symbol string) (float64, error)
}

// ErrDisconnected marks a gateway capability that was absent at
// construction. It is checked once, when a trader is built, rather than
// at every call site.
var ErrDisconnected = errors.New("execution gateway disconnected")

// Package sim is an in-memory execution gateway for tests and paper
// trading. Prices are set by the caller; fills are immediate.
package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/rustyeddy/intraday/broker"
	"github.com/rustyeddy/intraday/internal/id"
)

type Gateway struct {
	mu           sync.Mutex
	prices       map[string]float64
	rejectOrders bool
	failPrices   map[string]bool
}

func New() *Gateway {
	return &Gateway{
		prices:     make(map[string]float64),
		failPrices: make(map[string]bool),
	}
}

// SetPrice sets the last traded price for a symbol.
func (g *Gateway) SetPrice(symbol string, price float64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.prices[symbol] = price
	delete(g.failPrices, symbol)
}

// FailPrice makes GetLastPrice fail for a symbol until SetPrice is
// called again, simulating a dropped quote feed.
func (g *Gateway) FailPrice(symbol string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.failPrices[symbol] = true
}

// RejectOrders toggles order rejection for every subsequent PlaceOrder.
func (g *Gateway) RejectOrders(reject bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rejectOrders = reject
}

func (g *Gateway) PlaceOrder(ctx context.Context, req broker.OrderRequest) (broker.OrderResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if req.Quantity <= 0 {
		return broker.OrderResult{Status: broker.StatusError},
			fmt.Errorf("place order %s: quantity must be positive", req.Symbol)
	}
	if g.rejectOrders {
		return broker.OrderResult{Status: broker.StatusFailed}, nil
	}

	return broker.OrderResult{
		Status:  broker.StatusSuccess,
		OrderID: id.New(),
	}, nil
}

func (g *Gateway) GetLastPrice(ctx context.Context, symbol string) (float64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failPrices[symbol] {
		return 0, fmt.Errorf("no quote for %q", symbol)
	}
	p, ok := g.prices[symbol]
	if !ok {
		return 0, fmt.Errorf("no price for %q", symbol)
	}
	return p, nil
}

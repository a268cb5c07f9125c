package testutils

import (
	"context"
	"sync"

	"github.com/evdnx/gosb/exchange"
	"github.com/evdnx/gosb/types"
)

// MockExchange implements the exchange.Exchange interface in-memory with
// scriptable prices, balances and failures.
type MockExchange struct {
	mu sync.Mutex

	Prices      map[string]float64
	Balances    map[string]float64
	Series      map[string]types.Series
	Constraints map[string]exchange.Constraints

	// Errors injected per operation; consumed on every call while set.
	PriceErr       error
	OrderErr       error
	BalanceErr     error
	ConstraintsErr error
	SeriesErr      error

	orders []types.Order
}

func NewMockExchange() *MockExchange {
	return &MockExchange{
		Prices:      make(map[string]float64),
		Balances:    make(map[string]float64),
		Series:      make(map[string]types.Series),
		Constraints: make(map[string]exchange.Constraints),
	}
}

func (m *MockExchange) Ping(ctx context.Context) error { return nil }

func (m *MockExchange) FetchSeries(ctx context.Context, symbol, interval string, lookback int) (types.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SeriesErr != nil {
		return nil, m.SeriesErr
	}
	return m.Series[symbol], nil
}

func (m *MockExchange) Price(ctx context.Context, symbol string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PriceErr != nil {
		return 0, m.PriceErr
	}
	return m.Prices[symbol], nil
}

func (m *MockExchange) SubmitMarketOrder(ctx context.Context, symbol string, side types.Side, qty float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.OrderErr != nil {
		return m.OrderErr
	}
	m.orders = append(m.orders, types.Order{Symbol: symbol, Side: side, Qty: qty, Price: m.Prices[symbol]})
	return nil
}

func (m *MockExchange) Balance(ctx context.Context, asset string) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.BalanceErr != nil {
		return 0, m.BalanceErr
	}
	free, ok := m.Balances[asset]
	if !ok {
		// an unset balance defaults to ample funds so most tests need no setup
		return 1e12, nil
	}
	return free, nil
}

func (m *MockExchange) SymbolConstraints(ctx context.Context, symbol string) (exchange.Constraints, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ConstraintsErr != nil {
		return exchange.Constraints{}, m.ConstraintsErr
	}
	return m.Constraints[symbol], nil
}

// Orders returns a copy of all submitted orders (useful for assertions).
func (m *MockExchange) Orders() []types.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]types.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

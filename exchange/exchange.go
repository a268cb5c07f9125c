package exchange

import (
	"context"
	"errors"
	"fmt"

	"github.com/evdnx/gosb/types"
)

// Kind classifies a collaborator failure. The adapter decides the kind; the
// core never inspects error strings.
type Kind int

const (
	// Transient failures (network, rate limit, 5xx) are retried on the next
	// tick for the affected symbol only.
	Transient Kind = iota
	// Permanent failures (rejected request, bad symbol) are not retried.
	Permanent
)

// Error wraps a collaborator failure with its kind and the operation name.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("exchange %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransient reports whether err is a collaborator failure worth retrying
// next tick.
func IsTransient(err error) bool {
	var ee *Error
	return errors.As(err, &ee) && ee.Kind == Transient
}

// Constraints are the exchange-imposed trade filters for one symbol.
type Constraints struct {
	MinNotional  float64
	QuantityStep float64
}

// Exchange is the execution-venue contract the engine consumes. All calls
// are blocking call-and-return; hold timeouts are managed by the engine, not
// here.
type Exchange interface {
	FetchSeries(ctx context.Context, symbol, interval string, lookback int) (types.Series, error)
	Price(ctx context.Context, symbol string) (float64, error)
	SubmitMarketOrder(ctx context.Context, symbol string, side types.Side, qty float64) error
	Balance(ctx context.Context, asset string) (float64, error)
	SymbolConstraints(ctx context.Context, symbol string) (Constraints, error)
	Ping(ctx context.Context) error
}

package types

import "time"

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Opposite returns the side that flattens a position opened on s.
func (s Side) Opposite() Side {
	if s == Buy {
		return Sell
	}
	return Buy
}

// Signal is the optional directional vote an evaluator emits for one tick.
// The zero value means "no signal".
type Signal struct {
	Side  Side
	Valid bool
}

func BuySignal() Signal  { return Signal{Side: Buy, Valid: true} }
func SellSignal() Signal { return Signal{Side: Sell, Valid: true} }
func NoSignal() Signal   { return Signal{} }

// Bar is a single OHLCV kline.
type Bar struct {
	OpenTime time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	Volume   float64
}

// Series is a strictly time-ordered slice of bars for one symbol, refreshed
// wholesale each tick. Read-only from the evaluators' point of view.
type Series []Bar

func (s Series) Len() int { return len(s) }

func (s Series) Last() Bar {
	if len(s) == 0 {
		return Bar{}
	}
	return s[len(s)-1]
}

func (s Series) Closes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Close
	}
	return out
}

func (s Series) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Volume
	}
	return out
}

// Direction of an aggregated decision. Unlike Signal, NONE is explicit here
// because the decision is always materialized.
type Direction string

const (
	DirBuy  Direction = "BUY"
	DirSell Direction = "SELL"
	DirNone Direction = "NONE"
)

// Decision is the per-symbol, per-tick outcome of vote aggregation.
// Never persisted.
type Decision struct {
	Symbol     string
	Direction  Direction
	BuyVotes   int
	SellVotes  int
	Confidence float64
}

// Position is one live holding, keyed by symbol (at most one per symbol).
type Position struct {
	Symbol     string
	Side       Side
	EntryPrice float64
	Qty        float64
	OpenedAt   time.Time
	Timeout    time.Duration
}

// Result of a trade record.
type Result string

const (
	Pending Result = "pending"
	Win     Result = "win"
	Loss    Result = "loss"
)

// TradeRecord is created pending at open time and resolved exactly once when
// the matching position closes. Append-only afterward.
type TradeRecord struct {
	Symbol     string
	Direction  Side
	Amount     float64
	EntryPrice float64
	Timestamp  time.Time
	Result     Result
	Profit     float64
}

type Order struct {
	Symbol string
	Side   Side
	Qty    float64
	Price  float64 // fill reference price; orders are market orders
}

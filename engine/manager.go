package engine

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/evdnx/gosb/config"
	"github.com/evdnx/gosb/exchange"
	"github.com/evdnx/gosb/history"
	"github.com/evdnx/gosb/logger"
	"github.com/evdnx/gosb/metrics"
	"github.com/evdnx/gosb/notify"
	"github.com/evdnx/gosb/types"
)

// Manager owns the open-position book and the trade log. Opens happen on the
// primary tick, exits on the monitor tick; both run concurrently, so every
// read-enumerate and add/remove of the book goes through one mutex, and a
// pending record is resolved atomically with its position's removal.
type Manager struct {
	cfg    config.Config
	ex     exchange.Exchange
	store  history.Store
	notify notify.Notifier
	log    logger.Logger

	breaker *Breaker
	sizer   Sizer

	mu        sync.Mutex
	positions map[string]types.Position
	pending   map[string]types.TradeRecord // symbol -> its single pending record
	closed    []types.TradeRecord
	equity    float64
}

func NewManager(cfg config.Config, ex exchange.Exchange, store history.Store,
	n notify.Notifier, log logger.Logger, breaker *Breaker, sizer Sizer) *Manager {

	return &Manager{
		cfg:       cfg,
		ex:        ex,
		store:     store,
		notify:    n,
		log:       log,
		breaker:   breaker,
		sizer:     sizer,
		positions: make(map[string]types.Position),
		pending:   make(map[string]types.TradeRecord),
		equity:    cfg.StartEquity,
	}
}

// Seed installs the persisted closed-trade history and folds its realized
// profit into the starting equity.
func (m *Manager) Seed(records []types.TradeRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append([]types.TradeRecord(nil), records...)
	for _, r := range records {
		m.equity += r.Profit
	}
	metrics.EquityGauge.Set(m.equity)
}

// TryOpen runs the NO_POSITION -> OPEN transition for one aggregated
// decision. Every declined path is a skip, not an error; only collaborator
// trouble is reported.
func (m *Manager) TryOpen(ctx context.Context, d types.Decision, series types.Series, now time.Time) {
	if d.Direction == types.DirNone {
		return
	}
	if m.breaker.Paused(now) {
		m.log.Info("open_blocked_by_pause", logger.String("symbol", d.Symbol))
		return
	}

	m.mu.Lock()
	_, exists := m.positions[d.Symbol]
	equity := m.equity
	winRate, known := m.sizer.WinRate(m.closed, d.Symbol)
	m.mu.Unlock()
	if exists {
		return
	}

	notional := m.sizer.Notional(equity, winRate, known, d.Confidence)
	if notional <= 0 {
		return
	}

	// Fail closed when the exchange cannot report its constraints: trading
	// around an unknown minimum would bypass the venue's own rules.
	cons, err := m.ex.SymbolConstraints(ctx, d.Symbol)
	if err != nil {
		m.reportErr("min-notional lookup", d.Symbol, err)
		return
	}
	if notional < cons.MinNotional {
		m.log.Info("below_min_notional",
			logger.String("symbol", d.Symbol),
			logger.Float64("notional", notional),
			logger.Float64("min", cons.MinNotional),
		)
		return
	}

	price, err := m.ex.Price(ctx, d.Symbol)
	if err != nil {
		m.reportErr("price lookup", d.Symbol, err)
		return
	}
	if price <= 0 {
		return
	}

	side := types.Buy
	if d.Direction == types.DirSell {
		side = types.Sell
	}
	qty := notional / price
	if cons.QuantityStep > 0 {
		// the epsilon keeps an exact multiple from truncating a whole step
		qty = math.Floor(qty/cons.QuantityStep+1e-9) * cons.QuantityStep
	}
	if qty <= 0 {
		return
	}

	if ok, err := m.sufficientBalance(ctx, d.Symbol, side, notional, qty); err != nil {
		m.reportErr("balance lookup", d.Symbol, err)
		return
	} else if !ok {
		m.log.Info("insufficient_balance", logger.String("symbol", d.Symbol))
		return
	}

	if err := m.ex.SubmitMarketOrder(ctx, d.Symbol, side, qty); err != nil {
		m.reportErr("open order", d.Symbol, err)
		return
	}
	metrics.OrdersSubmitted.WithLabelValues("open").Inc()

	timeout := holdTimeout(series, m.cfg, d.Confidence)

	m.mu.Lock()
	if _, exists := m.positions[d.Symbol]; exists {
		// Cannot happen while opens run on a single tick goroutine; left as
		// a hard guard for the one-position-per-symbol invariant.
		m.mu.Unlock()
		m.reportInvariant(d.Symbol, "duplicate open after order submit")
		return
	}
	m.positions[d.Symbol] = types.Position{
		Symbol:     d.Symbol,
		Side:       side,
		EntryPrice: price,
		Qty:        qty,
		OpenedAt:   now,
		Timeout:    timeout,
	}
	m.pending[d.Symbol] = types.TradeRecord{
		Symbol:     d.Symbol,
		Direction:  side,
		Amount:     notional,
		EntryPrice: price,
		Timestamp:  now,
		Result:     types.Pending,
	}
	open := len(m.positions)
	m.mu.Unlock()

	metrics.PositionsOpen.Set(float64(open))
	m.log.Info("position_opened",
		logger.String("symbol", d.Symbol),
		logger.String("side", string(side)),
		logger.Float64("price", price),
		logger.Float64("qty", qty),
		logger.Float64("notional", notional),
		logger.Duration("timeout", timeout),
		logger.Float64("confidence", d.Confidence),
	)
	m.notify.Send(fmt.Sprintf("%s %s opened @ %.6f, staked %.2f (votes %d/%d)",
		d.Symbol, side, price, notional, d.BuyVotes, d.SellVotes))
}

// EvaluateExits checks every open position against the target, stop and
// hold-timeout rules and closes the qualifying ones. A transient
// collaborator failure skips just that symbol and leaves its state
// untouched, so the retry on the next tick is idempotent. Returns the
// resolutions performed this tick.
func (m *Manager) EvaluateExits(ctx context.Context, now time.Time) []types.TradeRecord {
	m.mu.Lock()
	open := make([]types.Position, 0, len(m.positions))
	for _, p := range m.positions {
		open = append(open, p)
	}
	m.mu.Unlock()

	var resolved []types.TradeRecord
	for _, pos := range open {
		price, err := m.ex.Price(ctx, pos.Symbol)
		if err != nil {
			m.reportErr("exit price lookup", pos.Symbol, err)
			continue
		}
		change := (price - pos.EntryPrice) / pos.EntryPrice * 100
		if pos.Side == types.Sell {
			change = -change // profit-direction-positive for shorts
		}
		elapsed := now.Sub(pos.OpenedAt)
		if change < m.cfg.TargetPct && change > m.cfg.StopPct && elapsed < pos.Timeout {
			continue
		}

		if err := m.ex.SubmitMarketOrder(ctx, pos.Symbol, pos.Side.Opposite(), pos.Qty); err != nil {
			m.reportErr("close order", pos.Symbol, err)
			continue
		}
		metrics.OrdersSubmitted.WithLabelValues("close").Inc()

		rec, ok := m.resolve(pos.Symbol, change)
		if !ok {
			continue
		}
		resolved = append(resolved, rec)
		m.breaker.Record(rec.Result, now)
		metrics.TradesResolved.WithLabelValues(string(rec.Result)).Inc()

		m.persist()
		m.log.Info("position_closed",
			logger.String("symbol", pos.Symbol),
			logger.String("result", string(rec.Result)),
			logger.Float64("change_pct", change),
			logger.Float64("profit", rec.Profit),
		)
		m.notify.Send(fmt.Sprintf("%s closed: %s (%.2f%%, %+.2f)",
			pos.Symbol, rec.Result, change, rec.Profit))
	}
	return resolved
}

// resolve removes the position and flips its pending record in one critical
// section, preserving the one-pending-record-per-open-position invariant.
func (m *Manager) resolve(symbol string, changePct float64) (types.TradeRecord, bool) {
	m.mu.Lock()
	if _, ok := m.positions[symbol]; !ok {
		// Already closed by a concurrent pass; nothing to do.
		m.mu.Unlock()
		return types.TradeRecord{}, false
	}
	rec, ok := m.pending[symbol]
	if !ok {
		m.mu.Unlock()
		// A position without its pending record is a programming error, not
		// an operational one. Leave the position open rather than orphan
		// the capital silently.
		m.reportInvariant(symbol, "no pending trade record at close")
		return types.TradeRecord{}, false
	}
	rec.Profit = math.Round(rec.Amount*changePct) / 100
	if rec.Profit > 0 {
		rec.Result = types.Win
	} else {
		rec.Result = types.Loss
	}
	m.closed = append(m.closed, rec)
	delete(m.pending, symbol)
	delete(m.positions, symbol)
	m.equity += rec.Profit
	equity := m.equity
	open := len(m.positions)
	m.mu.Unlock()

	metrics.EquityGauge.Set(equity)
	metrics.PositionsOpen.Set(float64(open))
	return rec, true
}

func (m *Manager) sufficientBalance(ctx context.Context, symbol string, side types.Side, notional, qty float64) (bool, error) {
	if side == types.Buy {
		free, err := m.ex.Balance(ctx, m.cfg.QuoteAsset)
		if err != nil {
			return false, err
		}
		return free >= notional, nil
	}
	base := strings.TrimSuffix(symbol, m.cfg.QuoteAsset)
	free, err := m.ex.Balance(ctx, base)
	if err != nil {
		return false, err
	}
	return free >= qty, nil
}

// persist rewrites the closed-trade log after a resolution. Failure is
// reported but never blocks trading.
func (m *Manager) persist() {
	m.mu.Lock()
	snapshot := append([]types.TradeRecord(nil), m.closed...)
	m.mu.Unlock()
	if err := m.store.Save(snapshot); err != nil {
		m.log.Error("history_save_failed", logger.Err(err))
		m.notify.Send("⚠ history save failed: " + err.Error())
	}
}

func (m *Manager) reportErr(op, symbol string, err error) {
	if exchange.IsTransient(err) {
		m.log.Warn("transient_exchange_error",
			logger.String("op", op),
			logger.String("symbol", symbol),
			logger.Err(err),
		)
		return
	}
	m.log.Error("exchange_error",
		logger.String("op", op),
		logger.String("symbol", symbol),
		logger.Err(err),
	)
	m.notify.Send(fmt.Sprintf("⚠ %s failed for %s: %v", op, symbol, err))
}

func (m *Manager) reportInvariant(symbol, detail string) {
	m.log.Error("invariant_violation",
		logger.String("symbol", symbol),
		logger.String("detail", detail),
	)
	m.notify.Send(fmt.Sprintf("‼ invariant violation on %s: %s", symbol, detail))
}

// Closed returns a copy of the closed-trade history.
func (m *Manager) Closed() []types.TradeRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.TradeRecord(nil), m.closed...)
}

// Equity returns the current tracked equity.
func (m *Manager) Equity() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.equity
}

// OpenCount returns the number of live positions.
func (m *Manager) OpenCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.positions)
}

// Position returns the live position for a symbol, if any.
func (m *Manager) Position(symbol string) (types.Position, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.positions[symbol]
	return p, ok
}

// PendingRecord returns the pending trade record for a symbol, if any.
func (m *Manager) PendingRecord(symbol string) (types.TradeRecord, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.pending[symbol]
	return r, ok
}

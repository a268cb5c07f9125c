package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/evdnx/gosb/config"
	"github.com/evdnx/gosb/exchange"
	"github.com/evdnx/gosb/history"
	"github.com/evdnx/gosb/logger"
	"github.com/evdnx/gosb/metrics"
	"github.com/evdnx/gosb/notify"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/strategy"
	"github.com/evdnx/gosb/types"
)

// Engine wires the evaluators, aggregator, lifecycle manager and adapter
// into two periodic activities: the primary signal tick that may open
// positions and the faster monitor tick that may close them.
type Engine struct {
	cfg        config.Config
	ex         exchange.Exchange
	store      history.Store
	notify     notify.Notifier
	log        logger.Logger
	evaluators []strategy.Evaluator
	params     *params.Store
	manager    *Manager
	adapter    *Adapter
}

func New(cfg config.Config, ex exchange.Exchange, store history.Store,
	n notify.Notifier, log logger.Logger) *Engine {

	ps := params.NewStore(params.Defaults())
	breaker := NewBreaker(cfg.BreakerThreshold, time.Duration(cfg.PauseMinutes)*time.Minute)
	sizer := Sizer{
		BasePercent:    cfg.BasePercent,
		PercentCeiling: cfg.PercentCeiling,
		WinRateHigh:    cfg.WinRateHigh,
		WinRateLow:     cfg.WinRateLow,
		MinSample:      cfg.MinSample,
	}
	return &Engine{
		cfg:        cfg,
		ex:         ex,
		store:      store,
		notify:     n,
		log:        log,
		evaluators: strategy.All(),
		params:     ps,
		manager:    NewManager(cfg, ex, store, n, log, breaker, sizer),
		adapter: &Adapter{
			Window:     cfg.AdapterWindow,
			Floor:      cfg.WinRateFloor,
			EMAStep:    cfg.EMAStep,
			EMACeiling: cfg.EMACeiling,
			EMABase:    cfg.EMABase,
			OscStep:    cfg.OscStep,
			OscFloor:   cfg.OscFloor,
			Store:      ps,
			Log:        log,
		},
	}
}

// Run blocks until ctx is cancelled. History is loaded once at start; the
// signal, monitor and report tickers then run until shutdown.
func (e *Engine) Run(ctx context.Context) error {
	records, err := e.store.Load()
	if err != nil {
		return fmt.Errorf("load trade history: %w", err)
	}
	e.manager.Seed(records)
	e.log.Info("engine_started",
		logger.Int("symbols", len(e.cfg.Symbols)),
		logger.Int("history", len(records)),
		logger.Float64("equity", e.manager.Equity()),
	)

	signalTicker := time.NewTicker(time.Duration(e.cfg.SignalTickSec) * time.Second)
	monitorTicker := time.NewTicker(time.Duration(e.cfg.MonitorTickSec) * time.Second)
	reportTicker := time.NewTicker(time.Duration(e.cfg.ReportHours) * time.Hour)
	defer signalTicker.Stop()
	defer monitorTicker.Stop()
	defer reportTicker.Stop()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-monitorTicker.C:
				resolved := e.manager.EvaluateExits(ctx, now)
				if len(resolved) > 0 {
					e.adapter.Observe(e.manager.Closed())
				}
			}
		}
	}()

	e.signalTick(ctx, time.Now())
	for {
		select {
		case <-ctx.Done():
			<-done
			e.log.Info("engine_stopped")
			return nil
		case now := <-signalTicker.C:
			e.signalTick(ctx, now)
		case <-reportTicker.C:
			e.notify.Send(e.statistics())
		}
	}
}

// signalTick evaluates every configured symbol independently; one symbol's
// failure never blocks the rest of the tick.
func (e *Engine) signalTick(ctx context.Context, now time.Time) {
	for _, symbol := range e.cfg.Symbols {
		if ctx.Err() != nil {
			return
		}
		series, err := e.ex.FetchSeries(ctx, symbol, e.cfg.Interval, e.cfg.Lookback)
		if err != nil {
			if exchange.IsTransient(err) {
				e.log.Warn("fetch_series_failed", logger.String("symbol", symbol), logger.Err(err))
			} else {
				e.log.Error("fetch_series_failed", logger.String("symbol", symbol), logger.Err(err))
				e.notify.Send(fmt.Sprintf("⚠ market data failed for %s: %v", symbol, err))
			}
			continue
		}
		if series.Len() < 2 {
			// short or empty result is a valid skip, not an error
			continue
		}

		votes := make([]types.Signal, 0, len(e.evaluators))
		for _, ev := range e.evaluators {
			sig := strategy.SafeEvaluate(ev, series, e.params.Get(ev.Name()))
			if sig.Valid {
				metrics.EvaluatorVotes.WithLabelValues(ev.Name(), string(sig.Side)).Inc()
			}
			votes = append(votes, sig)
		}
		decision := Aggregate(symbol, votes)
		e.log.Info("tick_decision",
			logger.String("symbol", symbol),
			logger.String("direction", string(decision.Direction)),
			logger.Int("buy_votes", decision.BuyVotes),
			logger.Int("sell_votes", decision.SellVotes),
			logger.Float64("confidence", decision.Confidence),
		)
		e.manager.TryOpen(ctx, decision, series, now)
	}
}

// statistics summarizes the trade log for the periodic operator report.
func (e *Engine) statistics() string {
	closed := e.manager.Closed()
	if len(closed) == 0 && e.manager.OpenCount() == 0 {
		return "no trades yet"
	}
	wins, losses := 0, 0
	staked, profit := 0.0, 0.0
	for _, r := range closed {
		staked += r.Amount
		profit += r.Profit
		if r.Result == types.Win {
			wins++
		} else {
			losses++
		}
	}
	open := e.manager.OpenCount()
	return fmt.Sprintf(
		"trading report\ntotal: %d\nwins: %d\nlosses: %d\nopen: %d\nstaked: %.2f\nprofit: %.2f\nequity: %.2f",
		len(closed)+open, wins, losses, open, staked, profit, e.manager.Equity())
}

// Manager exposes the lifecycle manager, mainly for tests and the CLI
// status path.
func (e *Engine) Manager() *Manager { return e.manager }

// Params exposes the shared parameter store.
func (e *Engine) Params() *params.Store { return e.params }

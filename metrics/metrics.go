package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	OrdersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosb_orders_submitted_total",
			Help: "Total number of orders submitted (by context, e.g. open/close).",
		},
		[]string{"ctx"},
	)

	TradesResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosb_trades_resolved_total",
			Help: "Closed trades by result (win/loss).",
		},
		[]string{"result"},
	)

	EvaluatorVotes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gosb_evaluator_votes_total",
			Help: "Directional votes emitted per evaluator.",
		},
		[]string{"evaluator", "side"},
	)

	PositionsOpen = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gosb_positions_open",
			Help: "Current number of open positions.",
		},
	)

	EquityGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gosb_equity",
			Help: "Current account equity tracked by the engine.",
		},
	)

	BreakerPaused = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "gosb_breaker_paused",
			Help: "1 while the loss-streak breaker pause window is active.",
		},
	)
)

func init() {
	prometheus.MustRegister(OrdersSubmitted, TradesResolved, EvaluatorVotes,
		PositionsOpen, EquityGauge, BreakerPaused)
}

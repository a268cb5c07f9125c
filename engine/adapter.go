package engine

import (
	"github.com/evdnx/gosb/logger"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// Adapter nudges evaluator periods when the trailing win rate sags. It is a
// deliberately crude perturbation: each invocation reacts only to the latest
// window and never checks whether the previous nudge helped.
type Adapter struct {
	Window     int
	Floor      float64 // win-rate floor that triggers a perturbation
	EMAStep    int
	EMACeiling int // stepping onto or past this wraps back to EMABase
	EMABase    int
	OscStep    int
	OscFloor   int

	Store *params.Store
	Log   logger.Logger
}

// Observe consumes the closed-trade history and perturbs the shared
// parameter store when the latest full window underperforms. No-op until
// the window fills.
func (a *Adapter) Observe(closed []types.TradeRecord) {
	resolved := make([]types.TradeRecord, 0, len(closed))
	for _, r := range closed {
		if r.Result == types.Win || r.Result == types.Loss {
			resolved = append(resolved, r)
		}
	}
	if len(resolved) < a.Window {
		return
	}
	recent := resolved[len(resolved)-a.Window:]
	wins := 0
	for _, r := range recent {
		if r.Result == types.Win {
			wins++
		}
	}
	rate := float64(wins) / float64(a.Window)
	if rate >= a.Floor {
		return
	}

	a.Store.Each(func(name string, p params.Params) params.Params {
		if p.EMAPeriod > 0 {
			p.EMAPeriod += a.EMAStep
			if p.EMAPeriod >= a.EMACeiling {
				p.EMAPeriod = a.EMABase
			}
		}
		if p.RSIPeriod > 0 {
			p.RSIPeriod -= a.OscStep
			if p.RSIPeriod < a.OscFloor {
				p.RSIPeriod = a.OscFloor
			}
		}
		return p
	})
	a.Log.Info("params_adapted",
		logger.Float64("win_rate", rate),
		logger.Int("window", a.Window),
	)
}

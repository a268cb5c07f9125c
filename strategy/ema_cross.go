package strategy

import (
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// EMACross is the classic fast/slow EMA crossover.
type EMACross struct{}

func (EMACross) Name() string { return "ema_cross" }

func (EMACross) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	if len(closes) < p.Slow+1 {
		return types.NoSignal()
	}
	fast := indicator.EMASeries(closes, p.Fast)
	slow := indicator.EMASeries(closes, p.Slow)
	n := len(closes)
	switch {
	case fast[n-2] < slow[n-2] && fast[n-1] > slow[n-1]:
		return types.BuySignal()
	case fast[n-2] > slow[n-2] && fast[n-1] < slow[n-1]:
		return types.SellSignal()
	}
	return types.NoSignal()
}

package strategy

import (
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// VWAPRSI reverts against the session VWAP with an RSI room check, the same
// shape as EMARSI but anchored on traded volume.
type VWAPRSI struct{}

func (VWAPRSI) Name() string { return "vwap_rsi" }

func (VWAPRSI) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	vwap, ok := indicator.VWAP(closes, s.Volumes())
	if !ok {
		return types.NoSignal()
	}
	rsi, ok := indicator.RSI(closes, p.RSIPeriod)
	if !ok {
		return types.NoSignal()
	}
	last := s.Last().Close
	switch {
	case last > vwap && rsi < p.Overbought:
		return types.BuySignal()
	case last < vwap && rsi > p.Oversold:
		return types.SellSignal()
	}
	return types.NoSignal()
}

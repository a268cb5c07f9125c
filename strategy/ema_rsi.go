package strategy

import (
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// EMARSI votes BUY when price trades above its EMA while RSI still has room
// below overbought, and SELL for the mirror case.
type EMARSI struct{}

func (EMARSI) Name() string { return "ema_rsi" }

func (EMARSI) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	ema, ok := indicator.EMA(closes, p.EMAPeriod)
	if !ok {
		return types.NoSignal()
	}
	rsi, ok := indicator.RSI(closes, p.RSIPeriod)
	if !ok {
		return types.NoSignal()
	}
	last := s.Last().Close
	switch {
	case last > ema && rsi < p.Overbought:
		return types.BuySignal()
	case last < ema && rsi > p.Oversold:
		return types.SellSignal()
	}
	return types.NoSignal()
}

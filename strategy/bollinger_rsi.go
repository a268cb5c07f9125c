package strategy

import (
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// BollingerRSI is a mean-reversion rule: price outside a 2-sigma band with a
// confirming oversold/overbought RSI.
type BollingerRSI struct{}

func (BollingerRSI) Name() string { return "bollinger_rsi" }

func (BollingerRSI) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	_, upper, lower, ok := indicator.Bollinger(closes, p.Window, 2)
	if !ok {
		return types.NoSignal()
	}
	rsi, ok := indicator.RSI(closes, p.RSIPeriod)
	if !ok {
		return types.NoSignal()
	}
	last := s.Last().Close
	switch {
	case last < lower && rsi < p.Oversold:
		return types.BuySignal()
	case last > upper && rsi > p.Overbought:
		return types.SellSignal()
	}
	return types.NoSignal()
}

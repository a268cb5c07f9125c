package strategy

import (
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// MACDCross votes on the MACD line crossing its signal line between the
// previous and the latest bar.
type MACDCross struct{}

func (MACDCross) Name() string { return "macd_cross" }

func (MACDCross) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	if len(closes) < p.Slow+1 {
		return types.NoSignal()
	}
	macd, sig := indicator.MACDSeries(closes, p.Fast, p.Slow, p.Signal)
	n := len(macd)
	prevAbove := macd[n-2] > sig[n-2]
	nowAbove := macd[n-1] > sig[n-1]
	switch {
	case !prevAbove && nowAbove:
		return types.BuySignal()
	case prevAbove && !nowAbove:
		return types.SellSignal()
	}
	return types.NoSignal()
}

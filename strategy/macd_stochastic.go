package strategy

import (
	"math"

	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// MACDStochastic requires a MACD/signal cross and a stochastic-RSI K/D cross
// in the same direction on the same bar.
type MACDStochastic struct{}

func (MACDStochastic) Name() string { return "macd_stochastic" }

func (MACDStochastic) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	if len(closes) < p.Slow+1 {
		return types.NoSignal()
	}
	macd, sig := indicator.MACDSeries(closes, p.Fast, p.Slow, p.Signal)
	k, d := indicator.StochRSI(closes, p.RSIPeriod, p.SmoothK, p.SmoothD)
	n := len(closes)
	for _, v := range []float64{k[n-1], k[n-2], d[n-1], d[n-2]} {
		if math.IsNaN(v) {
			return types.NoSignal()
		}
	}
	macdUp := macd[n-2] < sig[n-2] && macd[n-1] > sig[n-1]
	macdDown := macd[n-2] > sig[n-2] && macd[n-1] < sig[n-1]
	stochUp := k[n-2] < d[n-2] && k[n-1] > d[n-1]
	stochDown := k[n-2] > d[n-2] && k[n-1] < d[n-1]
	switch {
	case macdUp && stochUp:
		return types.BuySignal()
	case macdDown && stochDown:
		return types.SellSignal()
	}
	return types.NoSignal()
}

package engine

import "github.com/evdnx/gosb/types"

// Sizer converts equity, symbol win-rate history and vote confidence into a
// trade notional. Pure calculation, no side effects; the min-notional gate
// and balance checks live in the lifecycle manager's open path.
type Sizer struct {
	BasePercent    float64 // starting percent of equity
	PercentCeiling float64 // clamp after all adjustments
	WinRateHigh    float64 // >= adds two points
	WinRateLow     float64 // <= subtracts two points
	MinSample      int     // resolved trades before the win rate is trusted
}

// Notional returns the quote-currency amount to stake. winRateKnown is false
// when the symbol has fewer resolved trades than MinSample.
func (s Sizer) Notional(equity, winRate float64, winRateKnown bool, confidence float64) float64 {
	pct := s.BasePercent
	if winRateKnown {
		switch {
		case winRate >= s.WinRateHigh:
			pct += 2
		case winRate <= s.WinRateLow:
			pct -= 2
		}
	}
	pct += (confidence - 1.0) * 10
	if pct > s.PercentCeiling {
		pct = s.PercentCeiling
	}
	if pct <= 0 {
		return 0
	}
	return pct / 100 * equity
}

// WinRate computes the trailing win rate for one symbol over resolved
// records. known is false below the minimum sample.
func (s Sizer) WinRate(closed []types.TradeRecord, symbol string) (rate float64, known bool) {
	wins, total := 0, 0
	for _, r := range closed {
		if r.Symbol != symbol || (r.Result != types.Win && r.Result != types.Loss) {
			continue
		}
		total++
		if r.Result == types.Win {
			wins++
		}
	}
	if total < s.MinSample {
		return 0, false
	}
	return float64(wins) / float64(total), true
}

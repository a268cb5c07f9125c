package engine

import (
	"time"

	"github.com/evdnx/gosb/config"
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/types"
)

// holdTimeout derives the position's maximum hold duration from recent
// realized volatility: choppy markets get short holds, quiet ones long
// holds. The base is stretched by the volatility fraction and the decision
// confidence, then capped.
func holdTimeout(s types.Series, cfg config.Config, confidence float64) time.Duration {
	highs := make([]float64, len(s))
	lows := make([]float64, len(s))
	for i, b := range s {
		highs[i] = b.High
		lows[i] = b.Low
	}
	volPct, ok := indicator.AvgRangePct(highs, lows, s.Closes(), cfg.VolWindow)
	if !ok {
		volPct = 0
	}

	baseMin := cfg.LongHoldMin
	switch {
	case volPct > cfg.VolShortPct:
		baseMin = cfg.ShortHoldMin
	case volPct > cfg.VolMediumPct:
		baseMin = cfg.MediumHoldMin
	}

	minutes := float64(baseMin) * (1 + volPct/100) * confidence
	if ceiling := float64(cfg.TimeoutCapMin); minutes > ceiling {
		minutes = ceiling
	}
	return time.Duration(minutes * float64(time.Minute))
}

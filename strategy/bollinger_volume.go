package strategy

import (
	"github.com/evdnx/gosb/indicator"
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// BollingerVolume fades band breakouts confirmed by a volume spike: a close
// beyond the band on elevated volume is treated as exhaustion.
type BollingerVolume struct{}

func (BollingerVolume) Name() string { return "bollinger_volume" }

func (BollingerVolume) Evaluate(s types.Series, p params.Params) types.Signal {
	closes := s.Closes()
	_, upper, lower, ok := indicator.Bollinger(closes, p.Window, 2)
	if !ok {
		return types.NoSignal()
	}
	volMA, ok := indicator.SMA(s.Volumes(), p.Window)
	if !ok {
		return types.NoSignal()
	}
	last := s.Last()
	spike := last.Volume > p.VolumeFactor*volMA
	if !spike {
		return types.NoSignal()
	}
	switch {
	case last.Close > upper:
		return types.SellSignal()
	case last.Close < lower:
		return types.BuySignal()
	}
	return types.NoSignal()
}

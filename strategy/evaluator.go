package strategy

import (
	"github.com/evdnx/gosb/params"
	"github.com/evdnx/gosb/types"
)

// Evaluator consumes a price/volume series plus its parameter set and emits
// an optional directional signal. Implementations are pure with respect to
// their inputs; any derived indicator values are per-call scratch state.
type Evaluator interface {
	Name() string
	Evaluate(s types.Series, p params.Params) types.Signal
}

// All returns the full evaluator set in a stable order.
func All() []Evaluator {
	return []Evaluator{
		EMARSI{},
		BollingerRSI{},
		MACDCross{},
		VWAPRSI{},
		MACDStochastic{},
		BollingerVolume{},
		EMACross{},
	}
}

// SafeEvaluate shields the tick from a misbehaving evaluator: a panic is
// treated as an absent vote, same as a short series.
func SafeEvaluate(ev Evaluator, s types.Series, p params.Params) (sig types.Signal) {
	defer func() {
		if recover() != nil {
			sig = types.NoSignal()
		}
	}()
	return ev.Evaluate(s, p)
}

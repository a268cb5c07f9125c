package params

import "sync"

// Params is one evaluator's tunable set. A zero field means the evaluator
// does not declare that period: the adapter only perturbs declared periods.
type Params struct {
	EMAPeriod int // EMA-like period, adapted upward with wrap
	RSIPeriod int // oscillator period, adapted downward to a floor

	// Structural periods, never adapted.
	Fast    int
	Slow    int
	Signal  int
	Window  int
	SmoothK int
	SmoothD int

	Overbought   float64
	Oversold     float64
	VolumeFactor float64
}

// Defaults mirrors the parameter sets the evaluators originally shipped with.
func Defaults() map[string]Params {
	return map[string]Params{
		"ema_rsi":          {EMAPeriod: 20, RSIPeriod: 14, Overbought: 70, Oversold: 30},
		"bollinger_rsi":    {RSIPeriod: 14, Window: 20, Overbought: 70, Oversold: 30},
		"macd_cross":       {Fast: 12, Slow: 26, Signal: 9},
		"vwap_rsi":         {RSIPeriod: 14, Overbought: 70, Oversold: 30},
		"macd_stochastic":  {RSIPeriod: 14, Fast: 12, Slow: 26, Signal: 9, SmoothK: 3, SmoothD: 3},
		"bollinger_volume": {Window: 20, VolumeFactor: 1.5},
		"ema_cross":        {Fast: 9, Slow: 21},
	}
}

// Store is the process-wide mutable parameter set. Evaluators read it every
// tick; only the parameter adapter writes it. Last write wins, no versioning.
type Store struct {
	mu   sync.RWMutex
	sets map[string]Params
}

func NewStore(sets map[string]Params) *Store {
	if sets == nil {
		sets = Defaults()
	}
	cp := make(map[string]Params, len(sets))
	for k, v := range sets {
		cp[k] = v
	}
	return &Store{sets: cp}
}

// Get returns the current set for an evaluator; the zero Params if unknown.
func (s *Store) Get(name string) Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sets[name]
}

// Each applies fn to every parameter set under a single write lock.
// fn returns the replacement set.
func (s *Store) Each(fn func(name string, p Params) Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for name, p := range s.sets {
		s.sets[name] = fn(name, p)
	}
}

// Snapshot returns a copy of all sets, for logging and tests.
func (s *Store) Snapshot() map[string]Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Params, len(s.sets))
	for k, v := range s.sets {
		out[k] = v
	}
	return out
}

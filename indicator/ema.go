package indicator

// EMASeries computes an exponential moving average over the whole input,
// seeded with the first value, alpha = 2/(period+1).
func EMASeries(values []float64, period int) []float64 {
	if period <= 0 {
		period = 1
	}
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(period+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = out[i-1]*(1-alpha) + values[i]*alpha
	}
	return out
}

// EMA returns the latest EMA value. ok is false when the series is shorter
// than the period, so callers can treat the signal as absent.
func EMA(values []float64, period int) (float64, bool) {
	if len(values) < period || period <= 0 {
		return 0, false
	}
	s := EMASeries(values, period)
	return s[len(s)-1], true
}

// SMA returns the simple moving average of the trailing period values.
func SMA(values []float64, period int) (float64, bool) {
	if len(values) < period || period <= 0 {
		return 0, false
	}
	sum := 0.0
	for _, v := range values[len(values)-period:] {
		sum += v
	}
	return sum / float64(period), true
}

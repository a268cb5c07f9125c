package indicator

import "math"

// RSISeries computes the rolling-mean RSI for every index. Positions with
// fewer than period+1 samples, or where both average gain and average loss
// are zero, hold NaN.
func RSISeries(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if period <= 0 || len(values) <= period {
		return out
	}
	for i := period; i < len(values); i++ {
		gain, loss := 0.0, 0.0
		for j := i - period + 1; j <= i; j++ {
			delta := values[j] - values[j-1]
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		avgGain := gain / float64(period)
		avgLoss := loss / float64(period)
		switch {
		case avgLoss == 0 && avgGain == 0:
			// flat window, RSI undefined
		case avgLoss == 0:
			out[i] = 100
		default:
			rs := avgGain / avgLoss
			out[i] = 100 - 100/(1+rs)
		}
	}
	return out
}

// RSI returns the latest RSI value; ok is false on short or flat input.
func RSI(values []float64, period int) (float64, bool) {
	s := RSISeries(values, period)
	if len(s) == 0 {
		return 0, false
	}
	v := s[len(s)-1]
	if math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// StochRSI returns the smoothed %K and %D lines of the stochastic RSI.
// Both slices are index-aligned with the input; undefined positions are NaN.
func StochRSI(values []float64, period, smoothK, smoothD int) (k, d []float64) {
	rsi := RSISeries(values, period)
	stoch := make([]float64, len(rsi))
	for i := range stoch {
		stoch[i] = math.NaN()
		if i+1 < period {
			continue
		}
		lo, hi := math.Inf(1), math.Inf(-1)
		valid := true
		for j := i - period + 1; j <= i; j++ {
			if j < 0 || math.IsNaN(rsi[j]) {
				valid = false
				break
			}
			lo = math.Min(lo, rsi[j])
			hi = math.Max(hi, rsi[j])
		}
		if !valid || hi == lo {
			continue
		}
		stoch[i] = (rsi[i] - lo) / (hi - lo)
	}
	k = rollingMean(stoch, smoothK)
	d = rollingMean(k, smoothD)
	return k, d
}

// rollingMean averages the trailing window at each index, NaN where the
// window is incomplete or contains NaN.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
		if window <= 0 || i+1 < window {
			continue
		}
		sum := 0.0
		valid := true
		for j := i - window + 1; j <= i; j++ {
			if math.IsNaN(values[j]) {
				valid = false
				break
			}
			sum += values[j]
		}
		if valid {
			out[i] = sum / float64(window)
		}
	}
	return out
}

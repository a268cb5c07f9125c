package indicator

import "math"

// StdDev returns the population standard deviation of the trailing period
// values, matching the rolling std the band widths are derived from.
func StdDev(values []float64, period int) (float64, bool) {
	mean, ok := SMA(values, period)
	if !ok {
		return 0, false
	}
	variance := 0.0
	for _, v := range values[len(values)-period:] {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(period)
	return math.Sqrt(variance), true
}

// Bollinger returns the middle, upper and lower band for the trailing window.
func Bollinger(values []float64, period int, width float64) (mid, upper, lower float64, ok bool) {
	mid, ok = SMA(values, period)
	if !ok {
		return 0, 0, 0, false
	}
	std, ok := StdDev(values, period)
	if !ok {
		return 0, 0, 0, false
	}
	return mid, mid + width*std, mid - width*std, true
}

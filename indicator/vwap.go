package indicator

// VWAP returns the cumulative volume-weighted average price at the last bar.
// ok is false when no volume has traded.
func VWAP(closes, volumes []float64) (float64, bool) {
	if len(closes) == 0 || len(closes) != len(volumes) {
		return 0, false
	}
	pv, vol := 0.0, 0.0
	for i := range closes {
		pv += closes[i] * volumes[i]
		vol += volumes[i]
	}
	if vol == 0 {
		return 0, false
	}
	return pv / vol, true
}

// AvgRangePct is the mean (high-low)/close of the trailing window, as a
// percentage. Used to pick the adaptive hold timeout at open time.
func AvgRangePct(highs, lows, closes []float64, window int) (float64, bool) {
	n := len(closes)
	if window <= 0 || n < window || len(highs) != n || len(lows) != n {
		return 0, false
	}
	sum := 0.0
	for i := n - window; i < n; i++ {
		if closes[i] == 0 {
			return 0, false
		}
		sum += (highs[i] - lows[i]) / closes[i]
	}
	return sum / float64(window) * 100, true
}

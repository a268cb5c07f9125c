package indicator

// MACDSeries returns the MACD line (fast EMA minus slow EMA) and its signal
// line, index-aligned with the input.
func MACDSeries(values []float64, fast, slow, signal int) (macd, sig []float64) {
	fastEMA := EMASeries(values, fast)
	slowEMA := EMASeries(values, slow)
	macd = make([]float64, len(values))
	for i := range values {
		macd[i] = fastEMA[i] - slowEMA[i]
	}
	sig = EMASeries(macd, signal)
	return macd, sig
}

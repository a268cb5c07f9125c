package indicator

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSMA(t *testing.T) {
	v := []float64{1, 2, 3, 4, 5}
	got, ok := SMA(v, 5)
	if !ok || !almostEqual(got, 3) {
		t.Fatalf("SMA = %v ok=%v, want 3", got, ok)
	}
	got, ok = SMA(v, 2)
	if !ok || !almostEqual(got, 4.5) {
		t.Fatalf("trailing SMA(2) = %v ok=%v, want 4.5", got, ok)
	}
}

func TestSMAShortSeries(t *testing.T) {
	if _, ok := SMA([]float64{1, 2}, 5); ok {
		t.Fatal("expected ok=false for short series")
	}
}

func TestEMASeriesSeeded(t *testing.T) {
	s := EMASeries([]float64{10, 10, 10}, 3)
	for i, v := range s {
		if !almostEqual(v, 10) {
			t.Fatalf("EMA of constant series deviated at %d: %v", i, v)
		}
	}
}

func TestEMAShortSeries(t *testing.T) {
	if _, ok := EMA([]float64{1, 2, 3}, 5); ok {
		t.Fatal("expected ok=false below period")
	}
}

func TestRSIAllGains(t *testing.T) {
	v := make([]float64, 20)
	for i := range v {
		v[i] = float64(i) // monotonically rising
	}
	got, ok := RSI(v, 14)
	if !ok || got != 100 {
		t.Fatalf("RSI of pure uptrend = %v ok=%v, want 100", got, ok)
	}
}

func TestRSIFlatSeriesAbsent(t *testing.T) {
	v := make([]float64, 20)
	for i := range v {
		v[i] = 50
	}
	if _, ok := RSI(v, 14); ok {
		t.Fatal("flat series must yield undefined RSI, not a value")
	}
}

func TestRSIBalanced(t *testing.T) {
	// alternating +1/-1 deltas: avg gain == avg loss => RSI 50
	v := make([]float64, 30)
	for i := range v {
		if i%2 == 0 {
			v[i] = 100
		} else {
			v[i] = 101
		}
	}
	got, ok := RSI(v, 14)
	if !ok || !almostEqual(got, 50) {
		t.Fatalf("RSI of alternating series = %v ok=%v, want 50", got, ok)
	}
}

func TestBollingerBands(t *testing.T) {
	v := []float64{2, 4, 4, 4, 5, 5, 7, 9} // classic sample, std = 2
	mid, upper, lower, ok := Bollinger(v, 8, 2)
	if !ok {
		t.Fatal("expected bands")
	}
	if !almostEqual(mid, 5) || !almostEqual(upper, 9) || !almostEqual(lower, 1) {
		t.Fatalf("bands = %v/%v/%v, want 5/9/1", mid, upper, lower)
	}
}

func TestVWAP(t *testing.T) {
	closes := []float64{10, 20}
	volumes := []float64{1, 3}
	got, ok := VWAP(closes, volumes)
	if !ok || !almostEqual(got, 17.5) {
		t.Fatalf("VWAP = %v ok=%v, want 17.5", got, ok)
	}
}

func TestVWAPZeroVolume(t *testing.T) {
	if _, ok := VWAP([]float64{10}, []float64{0}); ok {
		t.Fatal("zero traded volume must be absent, not a division result")
	}
}

func TestMACDSeriesCross(t *testing.T) {
	// flat then a jump: MACD line must rise above its signal line
	v := make([]float64, 40)
	for i := range v {
		v[i] = 100
		if i >= 35 {
			v[i] = 110
		}
	}
	macd, sig := MACDSeries(v, 12, 26, 9)
	n := len(v)
	if macd[n-1] <= sig[n-1] {
		t.Fatalf("expected MACD above signal after jump: macd=%v sig=%v", macd[n-1], sig[n-1])
	}
}

func TestStochRSIRange(t *testing.T) {
	v := make([]float64, 60)
	for i := range v {
		v[i] = 100 + 5*math.Sin(float64(i)/3)
	}
	k, d := StochRSI(v, 14, 3, 3)
	last := len(v) - 1
	if math.IsNaN(k[last]) || math.IsNaN(d[last]) {
		t.Fatal("expected defined K/D on a long oscillating series")
	}
	if k[last] < 0 || k[last] > 1 {
		t.Fatalf("K out of [0,1]: %v", k[last])
	}
}

func TestAvgRangePct(t *testing.T) {
	highs := []float64{102, 102, 102}
	lows := []float64{98, 98, 98}
	closes := []float64{100, 100, 100}
	got, ok := AvgRangePct(highs, lows, closes, 3)
	if !ok || !almostEqual(got, 4) {
		t.Fatalf("AvgRangePct = %v ok=%v, want 4", got, ok)
	}
	if _, ok := AvgRangePct(highs, lows, closes, 5); ok {
		t.Fatal("expected ok=false when window exceeds series")
	}
}

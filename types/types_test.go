package types

import "testing"

func TestSideOpposite(t *testing.T) {
	if Buy.Opposite() != Sell || Sell.Opposite() != Buy {
		t.Fatal("opposite sides wrong")
	}
}

func TestSeriesAccessors(t *testing.T) {
	s := Series{
		{Close: 1, Volume: 10},
		{Close: 2, Volume: 20},
	}
	if s.Len() != 2 {
		t.Fatalf("len %d", s.Len())
	}
	if s.Last().Close != 2 {
		t.Fatalf("last %+v", s.Last())
	}
	closes := s.Closes()
	if len(closes) != 2 || closes[0] != 1 || closes[1] != 2 {
		t.Fatalf("closes %v", closes)
	}
	vols := s.Volumes()
	if vols[0] != 10 || vols[1] != 20 {
		t.Fatalf("volumes %v", vols)
	}
}

func TestEmptySeriesLast(t *testing.T) {
	var s Series
	if s.Last() != (Bar{}) {
		t.Fatal("empty series must yield the zero bar")
	}
}

func TestSignalConstructors(t *testing.T) {
	if sig := BuySignal(); !sig.Valid || sig.Side != Buy {
		t.Fatalf("%+v", sig)
	}
	if sig := SellSignal(); !sig.Valid || sig.Side != Sell {
		t.Fatalf("%+v", sig)
	}
	if NoSignal().Valid {
		t.Fatal("zero signal must be absent")
	}
}

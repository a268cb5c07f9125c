package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/evdnx/gosb/types"
)

func openStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "trades.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sample() []types.TradeRecord {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return []types.TradeRecord{
		{
			Symbol:     "BTCUSDT",
			Direction:  types.Buy,
			Amount:     50,
			EntryPrice: 64000.5,
			Timestamp:  ts,
			Result:     types.Win,
			Profit:     0.75,
		},
		{
			Symbol:     "ETHUSDT",
			Direction:  types.Sell,
			Amount:     70,
			EntryPrice: 3100.25,
			Timestamp:  ts.Add(time.Hour),
			Result:     types.Loss,
			Profit:     -0.7,
		},
	}
}

func TestEmptyStoreLoadsNothing(t *testing.T) {
	s := openStore(t)
	recs, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(recs) != 0 {
		t.Fatalf("fresh store holds %d records", len(recs))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openStore(t)
	want := sample()
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("loaded %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Timestamp.Equal(want[i].Timestamp) {
			t.Errorf("record %d timestamp %v, want %v", i, got[i].Timestamp, want[i].Timestamp)
		}
		got[i].Timestamp = want[i].Timestamp
		if got[i] != want[i] {
			t.Errorf("record %d: %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSaveReplacesWholeLog(t *testing.T) {
	s := openStore(t)
	if err := s.Save(sample()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(sample()[:1]); err != nil {
		t.Fatalf("second Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "BTCUSDT" {
		t.Fatalf("log not replaced: %+v", got)
	}
}

func TestLoadPreservesInsertionOrder(t *testing.T) {
	s := openStore(t)
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	var want []types.TradeRecord
	for i := 0; i < 10; i++ {
		want = append(want, types.TradeRecord{
			Symbol: "BTCUSDT", Direction: types.Buy, Amount: float64(i),
			EntryPrice: 1, Timestamp: ts, Result: types.Loss,
		})
	}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	for i := range want {
		if got[i].Amount != float64(i) {
			t.Fatalf("order lost at %d: %+v", i, got[i])
		}
	}
}

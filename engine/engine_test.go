package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/evdnx/gosb/config"
	"github.com/evdnx/gosb/exchange"
	"github.com/evdnx/gosb/testutils"
	"github.com/evdnx/gosb/types"
)

// capitulationSeries produces two confirming BUY votes: the close breaks the
// lower band with a pinned-low RSI, and the final bar carries a volume spike.
func capitulationSeries() types.Series {
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 0, 100)
	for i := 0; i < 90; i++ {
		closes = append(closes, 100)
	}
	for i := 1; i <= 10; i++ {
		closes = append(closes, 100-float64(2*i))
	}
	s := make(types.Series, len(closes))
	for i, c := range closes {
		s[i] = types.Bar{
			OpenTime: start.Add(time.Duration(i) * 5 * time.Minute),
			Open:     c,
			High:     c * 1.01,
			Low:      c * 0.99,
			Close:    c,
			Volume:   1,
		}
	}
	s[len(s)-1].Volume = 10
	return s
}

func newEngineRig(cfg config.Config) (*Engine, *testutils.MockExchange, *testutils.MockNotifier, *testutils.MockStore) {
	ex := testutils.NewMockExchange()
	notif := testutils.NewMockNotifier()
	store := testutils.NewMockStore(nil)
	return New(cfg, ex, store, notif, testutils.NewMockLogger()), ex, notif, store
}

func TestSignalTickOpensOnQuorum(t *testing.T) {
	cfg := config.Default()
	cfg.Symbols = []string{"BTCUSDT"}
	e, ex, _, _ := newEngineRig(cfg)
	ex.Series["BTCUSDT"] = capitulationSeries()
	ex.Prices["BTCUSDT"] = 80
	ex.Constraints["BTCUSDT"] = exchange.Constraints{MinNotional: 10, QuantityStep: 0.001}

	e.signalTick(context.Background(), time.Now())

	pos, ok := e.Manager().Position("BTCUSDT")
	if !ok {
		t.Fatal("two confirming votes must open a position")
	}
	if pos.Side != types.Buy {
		t.Fatalf("side %s, want BUY", pos.Side)
	}
}

func TestSignalTickHoldsWithoutQuorum(t *testing.T) {
	cfg := config.Default()
	cfg.Symbols = []string{"BTCUSDT"}
	e, ex, _, _ := newEngineRig(cfg)
	// established steady uptrend: RSI is pinned, nothing crosses, price
	// stays inside the bands, so every evaluator abstains
	s := rangeSeries(100, 100, 2)
	for i := range s {
		s[i].Close = 100 + float64(i)
		s[i].High = s[i].Close + 1
		s[i].Low = s[i].Close - 1
	}
	ex.Series["BTCUSDT"] = s
	ex.Prices["BTCUSDT"] = 100
	ex.Constraints["BTCUSDT"] = exchange.Constraints{MinNotional: 10, QuantityStep: 0.001}

	e.signalTick(context.Background(), time.Now())
	if e.Manager().OpenCount() != 0 {
		t.Fatal("no quorum, no trade")
	}
}

func TestSignalTickSkipsShortSeries(t *testing.T) {
	cfg := config.Default()
	cfg.Symbols = []string{"BTCUSDT"}
	e, ex, notif, _ := newEngineRig(cfg)
	ex.Series["BTCUSDT"] = rangeSeries(1, 100, 2)

	e.signalTick(context.Background(), time.Now())
	if e.Manager().OpenCount() != 0 {
		t.Fatal("short series must be skipped")
	}
	if len(notif.Messages()) != 0 {
		t.Fatal("a short series is a valid skip, not an error")
	}
}

func TestSignalTickTransientFetchFailureIsQuiet(t *testing.T) {
	cfg := config.Default()
	cfg.Symbols = []string{"BTCUSDT"}
	e, ex, notif, _ := newEngineRig(cfg)
	ex.SeriesErr = &exchange.Error{Kind: exchange.Transient, Op: "klines", Err: errors.New("502")}

	e.signalTick(context.Background(), time.Now())
	if len(notif.Messages()) != 0 {
		t.Fatal("transient market-data failure must not page")
	}
}

func TestSignalTickPermanentFetchFailurePages(t *testing.T) {
	cfg := config.Default()
	cfg.Symbols = []string{"BTCUSDT"}
	e, ex, notif, _ := newEngineRig(cfg)
	ex.SeriesErr = &exchange.Error{Kind: exchange.Permanent, Op: "klines", Err: errors.New("bad symbol")}

	e.signalTick(context.Background(), time.Now())
	msgs := notif.Messages()
	if len(msgs) != 1 || !strings.Contains(msgs[0], "⚠") {
		t.Fatalf("permanent failure must page once, got %v", msgs)
	}
}

func TestStatisticsEmptyBook(t *testing.T) {
	e, _, _, _ := newEngineRig(config.Default())
	if got := e.statistics(); got != "no trades yet" {
		t.Fatalf("empty report %q", got)
	}
}

func TestStatisticsSummary(t *testing.T) {
	e, _, _, _ := newEngineRig(config.Default())
	e.Manager().Seed([]types.TradeRecord{
		{Symbol: "BTCUSDT", Amount: 50, Result: types.Win, Profit: 0.75},
		{Symbol: "ETHUSDT", Amount: 50, Result: types.Loss, Profit: -0.5},
	})
	got := e.statistics()
	for _, want := range []string{"total: 2", "wins: 1", "losses: 1", "staked: 100.00", "profit: 0.25", "equity: 1000.25"} {
		if !strings.Contains(got, want) {
			t.Errorf("report missing %q:\n%s", want, got)
		}
	}
}

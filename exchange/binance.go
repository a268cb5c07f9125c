package exchange

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/evdnx/gosb/types"
)

// Binance is a spot REST client. Point BaseURL at the testnet
// (https://testnet.binance.vision) for paper accounts.
type Binance struct {
	baseURL string
	key     string
	secret  string
	client  *http.Client

	mu          sync.Mutex
	constraints map[string]Constraints // per-symbol filter cache
}

func NewBinance(baseURL, key, secret string) *Binance {
	return &Binance{
		baseURL:     baseURL,
		key:         key,
		secret:      secret,
		client:      &http.Client{Timeout: 10 * time.Second},
		constraints: make(map[string]Constraints),
	}
}

func (b *Binance) Ping(ctx context.Context) error {
	_, err := b.get(ctx, "/api/v3/ping", nil, false)
	return err
}

func (b *Binance) FetchSeries(ctx context.Context, symbol, interval string, lookback int) (types.Series, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("interval", interval)
	q.Set("limit", strconv.Itoa(lookback))
	body, err := b.get(ctx, "/api/v3/klines", q, false)
	if err != nil {
		return nil, err
	}
	var raw [][]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &Error{Kind: Permanent, Op: "klines", Err: err}
	}
	series := make(types.Series, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			continue
		}
		bar, err := parseKline(k)
		if err != nil {
			return nil, &Error{Kind: Permanent, Op: "klines", Err: err}
		}
		series = append(series, bar)
	}
	return series, nil
}

func parseKline(k []interface{}) (types.Bar, error) {
	openTime, ok := k[0].(float64)
	if !ok {
		return types.Bar{}, fmt.Errorf("unexpected open time %v", k[0])
	}
	vals := make([]float64, 5)
	for i := 1; i <= 5; i++ {
		s, ok := k[i].(string)
		if !ok {
			return types.Bar{}, fmt.Errorf("unexpected kline field %v", k[i])
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return types.Bar{}, err
		}
		vals[i-1] = f
	}
	return types.Bar{
		OpenTime: time.UnixMilli(int64(openTime)).UTC(),
		Open:     vals[0],
		High:     vals[1],
		Low:      vals[2],
		Close:    vals[3],
		Volume:   vals[4],
	}, nil
}

func (b *Binance) Price(ctx context.Context, symbol string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	body, err := b.get(ctx, "/api/v3/ticker/price", q, false)
	if err != nil {
		return 0, err
	}
	var out struct {
		Price string `json:"price"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, &Error{Kind: Permanent, Op: "ticker", Err: err}
	}
	p, err := strconv.ParseFloat(out.Price, 64)
	if err != nil {
		return 0, &Error{Kind: Permanent, Op: "ticker", Err: err}
	}
	return p, nil
}

func (b *Binance) SubmitMarketOrder(ctx context.Context, symbol string, side types.Side, qty float64) error {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("side", string(side))
	q.Set("type", "MARKET")
	q.Set("quantity", strconv.FormatFloat(qty, 'f', -1, 64))
	_, err := b.do(ctx, http.MethodPost, "/api/v3/order", q, true)
	return err
}

func (b *Binance) Balance(ctx context.Context, asset string) (float64, error) {
	body, err := b.get(ctx, "/api/v3/account", url.Values{}, true)
	if err != nil {
		return 0, err
	}
	var out struct {
		Balances []struct {
			Asset string `json:"asset"`
			Free  string `json:"free"`
		} `json:"balances"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, &Error{Kind: Permanent, Op: "account", Err: err}
	}
	for _, bal := range out.Balances {
		if bal.Asset == asset {
			f, err := strconv.ParseFloat(bal.Free, 64)
			if err != nil {
				return 0, &Error{Kind: Permanent, Op: "account", Err: err}
			}
			return f, nil
		}
	}
	return 0, nil
}

// SymbolConstraints caches exchangeInfo filters per symbol; the filters do
// not change intraday.
func (b *Binance) SymbolConstraints(ctx context.Context, symbol string) (Constraints, error) {
	b.mu.Lock()
	if c, ok := b.constraints[symbol]; ok {
		b.mu.Unlock()
		return c, nil
	}
	b.mu.Unlock()

	q := url.Values{}
	q.Set("symbol", symbol)
	body, err := b.get(ctx, "/api/v3/exchangeInfo", q, false)
	if err != nil {
		return Constraints{}, err
	}
	var out struct {
		Symbols []struct {
			Filters []struct {
				FilterType  string `json:"filterType"`
				MinNotional string `json:"minNotional"`
				StepSize    string `json:"stepSize"`
			} `json:"filters"`
		} `json:"symbols"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return Constraints{}, &Error{Kind: Permanent, Op: "exchangeInfo", Err: err}
	}
	if len(out.Symbols) == 0 {
		return Constraints{}, &Error{Kind: Permanent, Op: "exchangeInfo", Err: fmt.Errorf("unknown symbol %s", symbol)}
	}
	var c Constraints
	for _, f := range out.Symbols[0].Filters {
		switch f.FilterType {
		case "MIN_NOTIONAL", "NOTIONAL":
			c.MinNotional, _ = strconv.ParseFloat(f.MinNotional, 64)
		case "LOT_SIZE":
			c.QuantityStep, _ = strconv.ParseFloat(f.StepSize, 64)
		}
	}
	b.mu.Lock()
	b.constraints[symbol] = c
	b.mu.Unlock()
	return c, nil
}

func (b *Binance) get(ctx context.Context, path string, q url.Values, signed bool) ([]byte, error) {
	return b.do(ctx, http.MethodGet, path, q, signed)
}

func (b *Binance) do(ctx context.Context, method, path string, q url.Values, signed bool) ([]byte, error) {
	if q == nil {
		q = url.Values{}
	}
	if signed {
		q.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
		mac := hmac.New(sha256.New, []byte(b.secret))
		mac.Write([]byte(q.Encode()))
		q.Set("signature", hex.EncodeToString(mac.Sum(nil)))
	}
	u := b.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, nil)
	if err != nil {
		return nil, &Error{Kind: Permanent, Op: path, Err: err}
	}
	if b.key != "" {
		req.Header.Set("X-MBX-APIKEY", b.key)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, &Error{Kind: Transient, Op: path, Err: err}
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: Transient, Op: path, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		kind := Permanent
		if resp.StatusCode == http.StatusTooManyRequests ||
			resp.StatusCode == 418 || resp.StatusCode >= 500 {
			kind = Transient
		}
		return nil, &Error{Kind: kind, Op: path, Err: fmt.Errorf("status %d: %s", resp.StatusCode, body)}
	}
	return body, nil
}

package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds every tunable the engine reads. Secrets (exchange API keys,
// Telegram token/chat) are not part of this struct; they come from the
// environment.
type Config struct {
	// Universe
	Symbols  []string `mapstructure:"symbols"`
	Interval string   `mapstructure:"interval"` // kline interval, e.g. "5m"
	Lookback int      `mapstructure:"lookback"` // bars fetched per tick

	// Scheduling
	SignalTickSec  int `mapstructure:"signal_tick_sec"`  // primary tick period
	MonitorTickSec int `mapstructure:"monitor_tick_sec"` // exit-evaluation period
	ReportHours    int `mapstructure:"report_hours"`     // statistics report period

	// Sizing
	QuoteAsset     string  `mapstructure:"quote_asset"`
	StartEquity    float64 `mapstructure:"start_equity"`
	BasePercent    float64 `mapstructure:"base_percent"`    // percent of equity per trade
	PercentCeiling float64 `mapstructure:"percent_ceiling"` // clamp after adjustments
	WinRateHigh    float64 `mapstructure:"win_rate_high"`   // >= adds 2 points
	WinRateLow     float64 `mapstructure:"win_rate_low"`    // <= subtracts 2 points
	MinSample      int     `mapstructure:"min_sample"`      // resolved trades before win rate counts

	// Exit rules
	TargetPct float64 `mapstructure:"target_pct"` // close as soon as change >= this
	StopPct   float64 `mapstructure:"stop_pct"`   // close as soon as change <= this (negative)

	// Adaptive hold timeout
	VolWindow      int     `mapstructure:"vol_window"`       // bars for avg range
	VolShortPct    float64 `mapstructure:"vol_short_pct"`    // avg range above => short hold
	VolMediumPct   float64 `mapstructure:"vol_medium_pct"`   // avg range above => medium hold
	ShortHoldMin   int     `mapstructure:"short_hold_min"`
	MediumHoldMin  int     `mapstructure:"medium_hold_min"`
	LongHoldMin    int     `mapstructure:"long_hold_min"`
	TimeoutCapMin  int     `mapstructure:"timeout_cap_min"`

	// Loss-streak breaker
	BreakerThreshold int `mapstructure:"breaker_threshold"`
	PauseMinutes     int `mapstructure:"pause_minutes"`

	// Parameter adapter
	AdapterWindow int     `mapstructure:"adapter_window"`
	WinRateFloor  float64 `mapstructure:"win_rate_floor"`
	EMAStep       int     `mapstructure:"ema_step"`
	EMACeiling    int     `mapstructure:"ema_ceiling"`
	EMABase       int     `mapstructure:"ema_base"`
	OscStep       int     `mapstructure:"osc_step"`
	OscFloor      int     `mapstructure:"osc_floor"`

	// Infrastructure
	ExchangeBaseURL string `mapstructure:"exchange_base_url"`
	HistoryPath     string `mapstructure:"history_path"`
	MetricsAddr     string `mapstructure:"metrics_addr"`
}

// Default returns the configuration the original deployment ran with.
func Default() Config {
	return Config{
		Symbols:          []string{"BTCUSDT", "ETHUSDT", "SOLUSDT", "AVAXUSDT", "PEPEUSDT"},
		Interval:         "5m",
		Lookback:         100,
		SignalTickSec:    300,
		MonitorTickSec:   60,
		ReportHours:      3,
		QuoteAsset:       "USDT",
		StartEquity:      1000,
		BasePercent:      5,
		PercentCeiling:   30,
		WinRateHigh:      0.7,
		WinRateLow:       0.5,
		MinSample:        5,
		TargetPct:        1.5,
		StopPct:          -1.0,
		VolWindow:        20,
		VolShortPct:      3.0,
		VolMediumPct:     1.5,
		ShortHoldMin:     30,
		MediumHoldMin:    60,
		LongHoldMin:      120,
		TimeoutCapMin:    240,
		BreakerThreshold: 3,
		PauseMinutes:     60,
		AdapterWindow:    50,
		WinRateFloor:     0.5,
		EMAStep:          2,
		EMACeiling:       50,
		EMABase:          20,
		OscStep:          2,
		OscFloor:         8,
		ExchangeBaseURL:  "https://testnet.binance.vision",
		HistoryPath:      "trades.db",
		MetricsAddr:      ":9090",
	}
}

// Load reads the config file at path (JSON or YAML, decided by extension),
// layered over Default() and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, cfg.Validate()
}

// Validate checks that all numeric fields are within sensible bounds.
// It returns the first encountered error, allowing the caller to surface a
// clear configuration problem before any trading starts.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return errors.New("at least one symbol is required")
	}
	if c.Lookback < 30 {
		return fmt.Errorf("lookback (%d) too short for the rolling evaluators", c.Lookback)
	}
	if c.SignalTickSec <= 0 || c.MonitorTickSec <= 0 {
		return errors.New("tick periods must be positive")
	}
	if c.StartEquity <= 0 {
		return errors.New("start_equity must be positive")
	}
	if c.BasePercent <= 0 || c.BasePercent > c.PercentCeiling {
		return fmt.Errorf("base_percent (%f) must be >0 and <= percent_ceiling", c.BasePercent)
	}
	if c.PercentCeiling <= 0 || c.PercentCeiling > 100 {
		return fmt.Errorf("percent_ceiling (%f) out of range", c.PercentCeiling)
	}
	if c.WinRateHigh <= c.WinRateLow {
		return errors.New("win_rate_high must exceed win_rate_low")
	}
	if c.TargetPct <= 0 {
		return errors.New("target_pct must be positive")
	}
	if c.StopPct >= 0 {
		return errors.New("stop_pct must be negative")
	}
	if c.TimeoutCapMin <= 0 || c.ShortHoldMin <= 0 || c.MediumHoldMin <= 0 || c.LongHoldMin <= 0 {
		return errors.New("hold timeouts must be positive")
	}
	if c.BreakerThreshold <= 0 || c.PauseMinutes <= 0 {
		return errors.New("breaker threshold and pause must be positive")
	}
	if c.AdapterWindow <= 0 {
		return errors.New("adapter_window must be positive")
	}
	if c.WinRateFloor <= 0 || c.WinRateFloor >= 1 {
		return fmt.Errorf("win_rate_floor (%f) must be in (0,1)", c.WinRateFloor)
	}
	if c.EMABase <= 0 || c.EMACeiling <= c.EMABase {
		return errors.New("ema_ceiling must exceed ema_base")
	}
	if c.OscFloor <= 0 {
		return errors.New("osc_floor must be positive")
	}
	if c.ExchangeBaseURL == "" {
		return errors.New("exchange_base_url is required")
	}
	return nil
}

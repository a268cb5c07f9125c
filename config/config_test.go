package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"no symbols", func(c *Config) { c.Symbols = nil }},
		{"short lookback", func(c *Config) { c.Lookback = 10 }},
		{"zero tick", func(c *Config) { c.SignalTickSec = 0 }},
		{"zero equity", func(c *Config) { c.StartEquity = 0 }},
		{"base over ceiling", func(c *Config) { c.BasePercent = 40 }},
		{"ceiling over 100", func(c *Config) { c.PercentCeiling = 150 }},
		{"inverted win rates", func(c *Config) { c.WinRateHigh = 0.4 }},
		{"zero target", func(c *Config) { c.TargetPct = 0 }},
		{"positive stop", func(c *Config) { c.StopPct = 1 }},
		{"zero hold", func(c *Config) { c.ShortHoldMin = 0 }},
		{"zero breaker threshold", func(c *Config) { c.BreakerThreshold = 0 }},
		{"zero adapter window", func(c *Config) { c.AdapterWindow = 0 }},
		{"floor out of range", func(c *Config) { c.WinRateFloor = 1 }},
		{"ceiling below base period", func(c *Config) { c.EMACeiling = 10 }},
		{"zero osc floor", func(c *Config) { c.OscFloor = 0 }},
		{"no exchange url", func(c *Config) { c.ExchangeBaseURL = "" }},
	}
	for _, tc := range cases {
		cfg := Default()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BasePercent != Default().BasePercent {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("base_percent: 7\ntarget_pct: 2.5\nsymbols:\n  - BTCUSDT\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BasePercent != 7 || cfg.TargetPct != 2.5 {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if len(cfg.Symbols) != 1 || cfg.Symbols[0] != "BTCUSDT" {
		t.Fatalf("symbols not applied: %v", cfg.Symbols)
	}
	// untouched keys keep their defaults
	if cfg.StopPct != Default().StopPct {
		t.Fatalf("default lost: %+v", cfg)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_percent: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("invalid configuration must be rejected at load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("missing file must be an error")
	}
}

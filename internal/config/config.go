package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. Default symbol lists live
// here so tests and deployments can substitute their own.
type Config struct {
	Provider struct {
		Proxy              string `yaml:"proxy"`
		InsecureSkipVerify bool   `yaml:"insecure_skip_verify"`
	} `yaml:"provider"`
	Defaults struct {
		Benchmark   string            `yaml:"benchmark"`
		Period      string            `yaml:"period"`
		Indices     []string          `yaml:"indices"`
		SectorETFs  map[string]string `yaml:"sector_etfs"` // ETF symbol -> sector name
		MajorStocks []string          `yaml:"major_stocks"`
	} `yaml:"defaults"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		DigestCron string `yaml:"digest_cron"`
	} `yaml:"schedule"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Provider.Proxy = v
	}
	if v := os.Getenv("BENCHMARK_SYMBOL"); v != "" {
		cfg.Defaults.Benchmark = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		cfg.Schedule.DigestCron = v
	}

	// Defaults
	if cfg.Defaults.Benchmark == "" {
		cfg.Defaults.Benchmark = "^GSPC"
	}
	if cfg.Defaults.Period == "" {
		cfg.Defaults.Period = "1y"
	}
	if len(cfg.Defaults.Indices) == 0 {
		cfg.Defaults.Indices = []string{"^GSPC", "^DJI", "^IXIC"}
	}
	if len(cfg.Defaults.SectorETFs) == 0 {
		cfg.Defaults.SectorETFs = map[string]string{
			"XLK":  "Technology",
			"XLF":  "Financials",
			"XLV":  "Health Care",
			"XLE":  "Energy",
			"XLY":  "Consumer Discretionary",
			"XLP":  "Consumer Staples",
			"XLI":  "Industrials",
			"XLB":  "Materials",
			"XLRE": "Real Estate",
			"XLU":  "Utilities",
			"XLC":  "Communication Services",
		}
	}
	if len(cfg.Defaults.MajorStocks) == 0 {
		cfg.Defaults.MajorStocks = []string{"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA"}
	}
	if cfg.Schedule.DigestCron == "" {
		cfg.Schedule.DigestCron = "0 30 21 * * 1-5"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Defaults.Benchmark == "" {
		return fmt.Errorf("defaults.benchmark is required")
	}
	if len(c.Defaults.Indices) == 0 {
		return fmt.Errorf("defaults.indices must list at least one index")
	}
	return nil
}

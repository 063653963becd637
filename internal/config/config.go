package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"QuantumPulse/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	DataSource struct {
		BaseURL     string  `yaml:"base_url"`
		APIKey      string  `yaml:"api_key"`
		HistoryDays int     `yaml:"history_days"`
		RatePerSec  float64 `yaml:"rate_per_sec"`
	} `yaml:"data_source"`
	Universe struct {
		Tickers   []string `yaml:"tickers"`
		File      string   `yaml:"file"`
		RemoteCSV string   `yaml:"remote_csv"`
	} `yaml:"universe"`
	Weights  model.WeightTable `yaml:"weights"`
	Scoring  Scoring           `yaml:"scoring"`
	Holdings map[string]float64 `yaml:"holdings"` // ticker -> entry price, for break_even
	Schedule struct {
		ScanCron            string `yaml:"scan_cron"`
		UniverseRefreshCron string `yaml:"universe_refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Concurrency int    `yaml:"concurrency"`
	Proxy       string `yaml:"proxy"`
}

// Scoring holds the thresholds of the decision engine.
type Scoring struct {
	BuyThreshold       float64 `yaml:"buy_threshold"`
	TopN               int     `yaml:"top_n"`
	RSIWindow          int     `yaml:"rsi_window"`
	RSIOversold        float64 `yaml:"rsi_oversold"`
	DivergenceLookback int     `yaml:"divergence_lookback"`
	FairValueDiscount  float64 `yaml:"fair_value_discount"`
	FairValuePremium   float64 `yaml:"fair_value_premium"`
	ExitVotesRequired  int     `yaml:"exit_votes_required"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	weightsSet := false
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
		// A zero-valued weight table is ambiguous: it can mean the key
		// was absent or that every weight was written as 0. Only the
		// absent case gets defaults; an explicit table that sums to
		// zero must fail Validate instead.
		var keys struct {
			Weights *model.WeightTable `yaml:"weights"`
		}
		if err := yaml.Unmarshal(data, &keys); err == nil {
			weightsSet = keys.Weights != nil
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("SCAN_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Concurrency = n
		}
	}

	applyDefaults(cfg, weightsSet)
	return cfg, nil
}

func applyDefaults(cfg *Config, weightsSet bool) {
	if cfg.DataSource.BaseURL == "" {
		cfg.DataSource.BaseURL = "https://financialmodelingprep.com/api/v3"
	}
	if cfg.DataSource.HistoryDays == 0 {
		cfg.DataSource.HistoryDays = 1260 // ~5 years, enough for seasonality
	}
	if cfg.DataSource.RatePerSec == 0 {
		cfg.DataSource.RatePerSec = 4
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 18 * * 1-5"
	}
	if cfg.Schedule.UniverseRefreshCron == "" {
		cfg.Schedule.UniverseRefreshCron = "0 0 6 * * 1"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/quantum_pulse.db"
	}
	if cfg.Concurrency == 0 {
		cfg.Concurrency = 4
	}

	if !weightsSet && cfg.Weights == (model.WeightTable{}) {
		// COT defaults to 0: no data source is wired for it yet.
		cfg.Weights = model.WeightTable{
			Divergence:  1,
			Piotroski:   1,
			RSI:         1,
			Seasonality: 1,
			FairValue:   1,
			BreakEven:   1,
			COT:         0,
		}
	}

	s := &cfg.Scoring
	if s.BuyThreshold == 0 {
		s.BuyThreshold = 8.0
	}
	if s.TopN == 0 {
		s.TopN = 3
	}
	if s.RSIWindow == 0 {
		s.RSIWindow = 14
	}
	if s.RSIOversold == 0 {
		s.RSIOversold = 35
	}
	if s.DivergenceLookback == 0 {
		s.DivergenceLookback = 20
	}
	if s.FairValueDiscount == 0 {
		s.FairValueDiscount = 0.90
	}
	if s.FairValuePremium == 0 {
		s.FairValuePremium = 1.10
	}
	if s.ExitVotesRequired == 0 {
		s.ExitVotesRequired = 2
	}
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if c.DataSource.APIKey == "" {
		return fmt.Errorf("data_source.api_key is required")
	}
	if len(c.Universe.Tickers) == 0 && c.Universe.File == "" && c.Universe.RemoteCSV == "" {
		return fmt.Errorf("universe: tickers, file, or remote_csv is required")
	}
	for i, w := range c.Weights.Values() {
		if w < 0 {
			return fmt.Errorf("weights.%s must be non-negative", model.ComponentNames[i])
		}
	}
	if c.Weights.Total() == 0 {
		return fmt.Errorf("weights: at least one component weight must be positive")
	}
	return nil
}

// Package config loads and validates the runtime configuration shared
// by the backtest, live and optimize commands.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete runtime configuration.
type Config struct {
	Account     AccountConfig     `json:"account" yaml:"account"`
	Strategy    StrategyConfig    `json:"strategy" yaml:"strategy"`
	Risk        RiskConfig        `json:"risk" yaml:"risk"`
	Live        LiveConfig        `json:"live" yaml:"live"`
	Journal     JournalConfig     `json:"journal" yaml:"journal"`
	Performance PerformanceConfig `json:"performance" yaml:"performance"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
}

// StrategyConfig contains strategy selection and indicator parameters.
type StrategyConfig struct {
	Name          string  `json:"name" yaml:"name"`
	RSIOversold   float64 `json:"rsi_oversold" yaml:"rsi_oversold"`
	RSIOverbought float64 `json:"rsi_overbought" yaml:"rsi_overbought"`
	RSIPeriod     int     `json:"rsi_period" yaml:"rsi_period"`
	BBPeriod      int     `json:"bb_period" yaml:"bb_period"`
	BBStdDev      float64 `json:"bb_std_dev" yaml:"bb_std_dev"`
}

// RiskConfig contains position exit and sizing limits. A zero stop or
// target percentage disables that threshold.
type RiskConfig struct {
	StopLossPct        float64 `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	TakeProfitPct      float64 `json:"take_profit_pct" yaml:"take_profit_pct"`
	MaxActivePositions int     `json:"max_active_positions" yaml:"max_active_positions"`
	CapitalPerTradePct float64 `json:"capital_per_trade_pct" yaml:"capital_per_trade_pct"`
}

// LiveConfig contains the polling loop parameters.
type LiveConfig struct {
	Watchlist     []string `json:"watchlist" yaml:"watchlist"`
	PollInterval  string   `json:"poll_interval" yaml:"poll_interval"` // e.g. "1m", "30s"
	SnapshotEvery int      `json:"snapshot_every" yaml:"snapshot_every"`
	WindowBars    int      `json:"window_bars" yaml:"window_bars"`
	SnapshotFile  string   `json:"snapshot_file,omitempty" yaml:"snapshot_file,omitempty"`
}

// ParsePollInterval converts the poll interval string to time.Duration.
func (l LiveConfig) ParsePollInterval() (time.Duration, error) {
	if l.PollInterval == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(l.PollInterval)
}

// JournalConfig contains trade persistence parameters.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "csv", "sqlite" or "none"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// PerformanceConfig contains report parameters. A zero annualization
// uses the built-in intraday default.
type PerformanceConfig struct {
	Annualization float64 `json:"annualization,omitempty" yaml:"annualization,omitempty"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	return &Config{
		Account: AccountConfig{InitialCapital: 100000},
		Strategy: StrategyConfig{
			Name:          "rsi-bb",
			RSIOversold:   30,
			RSIOverbought: 70,
			RSIPeriod:     14,
			BBPeriod:      20,
			BBStdDev:      2.0,
		},
		Risk: RiskConfig{
			StopLossPct:        2.0,
			TakeProfitPct:      5.0,
			MaxActivePositions: 5,
			CapitalPerTradePct: 20,
		},
		Live: LiveConfig{
			PollInterval:  "1m",
			SnapshotEvery: 5,
			WindowBars:    50,
			SnapshotFile:  "portfolio_status.json",
		},
		Journal: JournalConfig{
			Type:       "csv",
			TradesFile: "trades.csv",
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. File
// values override defaults; omitted keys keep them.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile saves configuration to a file, YAML for .yaml/.yml paths
// and indented JSON otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if (len(path) > 5 && path[len(path)-5:] == ".yaml") || (len(path) > 4 && path[len(path)-4:] == ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.InitialCapital <= 0 {
		return fmt.Errorf("account.initial_capital must be positive")
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Strategy.RSIOversold >= c.Strategy.RSIOverbought {
		return fmt.Errorf("strategy.rsi_oversold must be below rsi_overbought")
	}
	if c.Strategy.RSIPeriod <= 0 {
		return fmt.Errorf("strategy.rsi_period must be positive")
	}
	if c.Strategy.BBPeriod <= 1 {
		return fmt.Errorf("strategy.bb_period must be at least 2")
	}
	if c.Strategy.BBStdDev <= 0 {
		return fmt.Errorf("strategy.bb_std_dev must be positive")
	}
	if c.Risk.StopLossPct < 0 || c.Risk.StopLossPct >= 100 {
		return fmt.Errorf("risk.stop_loss_pct must be in [0, 100)")
	}
	if c.Risk.TakeProfitPct < 0 {
		return fmt.Errorf("risk.take_profit_pct must not be negative")
	}
	if c.Risk.MaxActivePositions <= 0 {
		return fmt.Errorf("risk.max_active_positions must be positive")
	}
	if c.Risk.CapitalPerTradePct <= 0 || c.Risk.CapitalPerTradePct > 100 {
		return fmt.Errorf("risk.capital_per_trade_pct must be in (0, 100]")
	}
	if _, err := c.Live.ParsePollInterval(); err != nil {
		return fmt.Errorf("live.poll_interval: %w", err)
	}
	if c.Live.WindowBars != 0 && c.Live.WindowBars < 2 {
		return fmt.Errorf("live.window_bars must be at least 2")
	}
	switch c.Journal.Type {
	case "", "none", "csv", "sqlite":
	default:
		return fmt.Errorf("journal.type must be csv, sqlite or none")
	}
	if c.Performance.Annualization < 0 {
		return fmt.Errorf("performance.annualization must not be negative")
	}
	return nil
}

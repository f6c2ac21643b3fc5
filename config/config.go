// Package config reads run files: which data to load, how to
// classify it, and what strategy to test over it. Syntactic checks
// happen here; numeric strategy validation stays with the engine.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mwhitlock/cycletrader/backtest"
	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/indicators"
	"github.com/mwhitlock/cycletrader/market"
)

// Config represents one complete run: data, indicators, classifier,
// strategy, analytics, and journaling.
type Config struct {
	Data       DataConfig        `json:"data" yaml:"data"`
	Indicators indicators.Config `json:"indicators" yaml:"indicators"`
	Classifier cycle.Config      `json:"classifier" yaml:"classifier"`
	Strategy   StrategyConfig    `json:"strategy" yaml:"strategy"`
	Analytics  AnalyticsConfig   `json:"analytics" yaml:"analytics"`
	Journal    JournalConfig     `json:"journal" yaml:"journal"`
}

// DataConfig names the input series. Macro is optional unless the
// strategy filters on stages. From/To bound the loaded range and may
// be RFC3339 timestamps or plain dates.
type DataConfig struct {
	Bars      string `json:"bars" yaml:"bars"`
	Macro     string `json:"macro,omitempty" yaml:"macro,omitempty"`
	Frequency string `json:"frequency" yaml:"frequency"`
	From      string `json:"from,omitempty" yaml:"from,omitempty"`
	To        string `json:"to,omitempty" yaml:"to,omitempty"`
}

// StrategyConfig contains the trading rule parameters.
type StrategyConfig struct {
	InitialCapital  float64            `json:"initial_capital" yaml:"initial_capital"`
	Entry           string             `json:"entry" yaml:"entry"`
	Exit            string             `json:"exit" yaml:"exit"`
	OscillatorEntry float64            `json:"oscillator_entry,omitempty" yaml:"oscillator_entry,omitempty"`
	OscillatorExit  float64            `json:"oscillator_exit,omitempty" yaml:"oscillator_exit,omitempty"`
	StopLossPct     float64            `json:"stop_loss_pct" yaml:"stop_loss_pct"`
	ProfitTargetPct float64            `json:"profit_target_pct,omitempty" yaml:"profit_target_pct,omitempty"`
	TrailPct        float64            `json:"trail_pct,omitempty" yaml:"trail_pct,omitempty"`
	TrailByStage    map[string]float64 `json:"trail_by_stage,omitempty" yaml:"trail_by_stage,omitempty"`
	Filter          []string           `json:"filter,omitempty" yaml:"filter,omitempty"`
}

// AnalyticsConfig tunes metric computation.
type AnalyticsConfig struct {
	RiskFreeRate float64 `json:"risk_free_rate" yaml:"risk_free_rate"`
}

// JournalConfig selects where finished runs are recorded. Type "none"
// (or empty) disables journaling.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	RunsFile   string `json:"runs_file,omitempty" yaml:"runs_file,omitempty"`
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	OrgFile    string `json:"org_file,omitempty" yaml:"org_file,omitempty"`
}

// LoadFromFile loads a run file (YAML or JSON). Omitted sections keep
// their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON.
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration; the extension picks the
// format (.yaml/.yml for YAML, anything else JSON).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks that every section parses. Strategy numerics are
// checked again by the engine when the run is assembled.
func (c *Config) Validate() error {
	if c.Data.Bars == "" {
		return fmt.Errorf("data.bars is required")
	}
	if _, err := market.ParseFrequency(c.Data.Frequency); err != nil {
		return fmt.Errorf("data.frequency: %w", err)
	}
	if _, _, err := c.Range(); err != nil {
		return err
	}

	if err := c.Indicators.Validate(); err != nil {
		return fmt.Errorf("indicators: %w", err)
	}
	if err := c.Classifier.Validate(); err != nil {
		return fmt.Errorf("classifier: %w", err)
	}

	if c.Strategy.InitialCapital <= 0 {
		return fmt.Errorf("strategy.initial_capital must be positive")
	}
	if _, err := backtest.ParseEntryRule(c.Strategy.Entry); err != nil {
		return fmt.Errorf("strategy.entry: %w", err)
	}
	if _, err := backtest.ParseExitRule(c.Strategy.Exit); err != nil {
		return fmt.Errorf("strategy.exit: %w", err)
	}
	for _, name := range c.Strategy.Filter {
		if _, err := cycle.ParseLabel(name); err != nil {
			return fmt.Errorf("strategy.filter: %w", err)
		}
	}
	for name := range c.Strategy.TrailByStage {
		if _, err := cycle.ParseLabel(name); err != nil {
			return fmt.Errorf("strategy.trail_by_stage: %w", err)
		}
	}
	if len(c.Strategy.Filter) > 0 && c.Data.Macro == "" {
		return fmt.Errorf("strategy.filter requires data.macro")
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.RunsFile == "" || c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal runs_file, trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Frequency returns the parsed bar frequency.
func (c *Config) Frequency() (market.Frequency, error) {
	return market.ParseFrequency(c.Data.Frequency)
}

// Range returns the configured [from, to) bounds; zero times mean
// unbounded.
func (c *Config) Range() (time.Time, time.Time, error) {
	from, err := parseOptTime(c.Data.From)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data.from: %w", err)
	}
	to, err := parseOptTime(c.Data.To)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("data.to: %w", err)
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("data.from must be before data.to")
	}
	return from, to, nil
}

func parseOptTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q", s)
	}
	return t, nil
}

// BacktestConfig assembles the engine configuration from the strategy
// section. The engine re-validates on New.
func (c *Config) BacktestConfig() (backtest.Config, error) {
	entry, err := backtest.ParseEntryRule(c.Strategy.Entry)
	if err != nil {
		return backtest.Config{}, err
	}
	exit, err := backtest.ParseExitRule(c.Strategy.Exit)
	if err != nil {
		return backtest.Config{}, err
	}

	bc := backtest.Config{
		InitialCapital:  c.Strategy.InitialCapital,
		Entry:           entry,
		Exit:            exit,
		OscillatorEntry: c.Strategy.OscillatorEntry,
		OscillatorExit:  c.Strategy.OscillatorExit,
		StopLossPct:     c.Strategy.StopLossPct,
		ProfitTargetPct: c.Strategy.ProfitTargetPct,
		TrailPct:        c.Strategy.TrailPct,
		Indicators:      c.Indicators,
	}

	for _, name := range c.Strategy.Filter {
		label, err := cycle.ParseLabel(name)
		if err != nil {
			return backtest.Config{}, err
		}
		bc.Filter = append(bc.Filter, label)
	}
	if len(c.Strategy.TrailByStage) > 0 {
		bc.TrailPctByLabel = make(map[cycle.Label]float64, len(c.Strategy.TrailByStage))
		for name, pct := range c.Strategy.TrailByStage {
			label, err := cycle.ParseLabel(name)
			if err != nil {
				return backtest.Config{}, err
			}
			bc.TrailPctByLabel[label] = pct
		}
	}
	return bc, nil
}

// Default returns a runnable configuration missing only the data
// paths.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Frequency: "daily",
		},
		Indicators: indicators.DefaultConfig(),
		Classifier: cycle.DefaultConfig(),
		Strategy: StrategyConfig{
			InitialCapital:  10000,
			Entry:           "band-oscillator",
			Exit:            "middle-band",
			OscillatorEntry: 30,
			OscillatorExit:  70,
			StopLossPct:     0.02,
		},
		Analytics: AnalyticsConfig{},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}

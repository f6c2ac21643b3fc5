package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitlock/cycletrader/backtest"
	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/market"
)

const fullYAML = `
data:
  bars: testdata/spy.csv
  macro: testdata/macro.csv
  frequency: weekly
  from: 2024-01-01
  to: 2024-06-30
indicators:
  ma_period: 10
  band_width: 1.5
  rsi_period: 7
classifier:
  trend_lookback: 2
strategy:
  initial_capital: 25000
  entry: squeeze
  exit: upper-channel
  stop_loss_pct: 0.03
  profit_target_pct: 0.1
  trail_pct: 0.05
  trail_by_stage:
    Peak: 0.02
  filter: [Expansion, Recovery]
analytics:
  risk_free_rate: 0.02
journal:
  type: sqlite
  db_path: runs.db
`

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromFileYAML(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "run.yaml", fullYAML))
	require.NoError(t, err)

	assert.Equal(t, "testdata/spy.csv", cfg.Data.Bars)
	assert.Equal(t, "testdata/macro.csv", cfg.Data.Macro)
	assert.Equal(t, "weekly", cfg.Data.Frequency)

	// Explicit fields override, everything else keeps its default.
	assert.Equal(t, 10, cfg.Indicators.MAPeriod)
	assert.Equal(t, 1.5, cfg.Indicators.BandWidth)
	assert.Equal(t, 7, cfg.Indicators.RSIPeriod)
	assert.Equal(t, 14, cfg.Indicators.ATRPeriod)
	assert.Equal(t, 26, cfg.Indicators.MACDSlow)

	assert.Equal(t, 2, cfg.Classifier.TrendLookback)
	assert.Equal(t, -0.2, cfg.Classifier.InversionThreshold)

	assert.Equal(t, 25000.0, cfg.Strategy.InitialCapital)
	assert.Equal(t, "squeeze", cfg.Strategy.Entry)
	assert.Equal(t, 30.0, cfg.Strategy.OscillatorEntry)
	assert.Equal(t, []string{"Expansion", "Recovery"}, cfg.Strategy.Filter)

	assert.Equal(t, 0.02, cfg.Analytics.RiskFreeRate)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
}

func TestLoadFromFileJSON(t *testing.T) {
	body := `{
  "data": {"bars": "spy.csv", "frequency": "daily"},
  "strategy": {"initial_capital": 5000, "entry": "channel-oscillator", "exit": "oscillator", "stop_loss_pct": 0.02}
}`
	cfg, err := LoadFromFile(writeConfig(t, "run.json", body))
	require.NoError(t, err)

	assert.Equal(t, "spy.csv", cfg.Data.Bars)
	assert.Equal(t, 5000.0, cfg.Strategy.InitialCapital)
	assert.Equal(t, "channel-oscillator", cfg.Strategy.Entry)
}

func TestLoadFromFileBadSyntax(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, "run.yaml", "strategy: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateErrors(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Data.Bars = "spy.csv"
		cfg.Data.Macro = "macro.csv"
		return cfg
	}

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing bars", func(c *Config) { c.Data.Bars = "" }},
		{"bad frequency", func(c *Config) { c.Data.Frequency = "fortnightly" }},
		{"from after to", func(c *Config) { c.Data.From = "2024-06-01"; c.Data.To = "2024-01-01" }},
		{"bad from", func(c *Config) { c.Data.From = "June 1st" }},
		{"bad indicator", func(c *Config) { c.Indicators.BandWidth = -1 }},
		{"bad classifier", func(c *Config) { c.Classifier.TrendLookback = 0 }},
		{"zero capital", func(c *Config) { c.Strategy.InitialCapital = 0 }},
		{"bad entry", func(c *Config) { c.Strategy.Entry = "momentum" }},
		{"bad exit", func(c *Config) { c.Strategy.Exit = "never" }},
		{"bad filter label", func(c *Config) { c.Strategy.Filter = []string{"Boom"} }},
		{"bad trail stage", func(c *Config) { c.Strategy.TrailByStage = map[string]float64{"Boom": 0.1} }},
		{"filter without macro", func(c *Config) { c.Data.Macro = ""; c.Strategy.Filter = []string{"Expansion"} }},
		{"bad journal type", func(c *Config) { c.Journal.Type = "postgres" }},
		{"csv journal missing files", func(c *Config) { c.Journal.Type = "csv" }},
		{"sqlite journal missing path", func(c *Config) { c.Journal.Type = "sqlite" }},
	}

	require.NoError(t, valid().Validate())
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBacktestConfig(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "run.yaml", fullYAML))
	require.NoError(t, err)

	bc, err := cfg.BacktestConfig()
	require.NoError(t, err)

	assert.Equal(t, backtest.EntrySqueeze, bc.Entry)
	assert.Equal(t, backtest.ExitUpperChannel, bc.Exit)
	assert.Equal(t, 25000.0, bc.InitialCapital)
	assert.Equal(t, 0.03, bc.StopLossPct)
	assert.Equal(t, []cycle.Label{cycle.Expansion, cycle.Recovery}, bc.Filter)
	assert.Equal(t, map[cycle.Label]float64{cycle.Peak: 0.02}, bc.TrailPctByLabel)
	assert.Equal(t, 10, bc.Indicators.MAPeriod)
}

func TestFrequencyAndRange(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "run.yaml", fullYAML))
	require.NoError(t, err)

	freq, err := cfg.Frequency()
	require.NoError(t, err)
	assert.Equal(t, market.Weekly, freq)

	from, to, err := cfg.Range()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), to)
}

func TestSaveToFileRoundTrip(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, "run.yaml", fullYAML))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.SaveToFile(out))

	loaded, err := LoadFromFile(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultNeedsOnlyData(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.Validate())

	cfg.Data.Bars = "spy.csv"
	assert.NoError(t, cfg.Validate())
}

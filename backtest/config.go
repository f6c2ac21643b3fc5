package backtest

import (
	"errors"
	"fmt"

	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/indicators"
)

// ErrInvalidConfig reports contradictory strategy settings. A run
// failing validation produces no output at all.
var ErrInvalidConfig = errors.New("invalid backtest configuration")

// Config describes one run. Sizing is binary: the full balance is
// invested on entry and returns to cash on exit.
type Config struct {
	InitialCapital float64

	Entry EntryRule
	Exit  ExitRule

	// Oscillator thresholds read by the rules that use them.
	OscillatorEntry float64
	OscillatorExit  float64

	// StopLossPct is required; ProfitTargetPct and TrailPct are
	// disabled at zero.
	StopLossPct     float64
	ProfitTargetPct float64
	TrailPct        float64

	// TrailPctByLabel overrides TrailPct while the timeline reports
	// the given label, e.g. a tighter trail during Peak.
	TrailPctByLabel map[cycle.Label]float64

	// Filter lists the labels entries are permitted in. Empty means
	// no macro filtering.
	Filter []cycle.Label

	Indicators indicators.Config
}

// Validate rejects contradictory settings before a run produces any
// output. Indicator parameter problems keep their own error kind.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return fmt.Errorf("%w: initial capital must be positive, got %v", ErrInvalidConfig, c.InitialCapital)
	}
	if c.StopLossPct <= 0 {
		return fmt.Errorf("%w: stop loss percent must be positive, got %v", ErrInvalidConfig, c.StopLossPct)
	}
	if c.ProfitTargetPct < 0 {
		return fmt.Errorf("%w: profit target percent must not be negative, got %v", ErrInvalidConfig, c.ProfitTargetPct)
	}
	if c.TrailPct < 0 {
		return fmt.Errorf("%w: trailing percent must not be negative, got %v", ErrInvalidConfig, c.TrailPct)
	}
	for label, pct := range c.TrailPctByLabel {
		if pct <= 0 {
			return fmt.Errorf("%w: trailing percent for %s must be positive, got %v", ErrInvalidConfig, label, pct)
		}
	}

	if c.Entry < EntryBandOscillator || c.Entry > EntryCycle {
		return fmt.Errorf("%w: unknown entry rule %d", ErrInvalidConfig, int(c.Entry))
	}
	if c.Exit < ExitMiddleBand || c.Exit > ExitNone {
		return fmt.Errorf("%w: unknown exit rule %d", ErrInvalidConfig, int(c.Exit))
	}
	if c.Entry == EntryCycle && len(c.Filter) == 0 {
		return fmt.Errorf("%w: the cycle entry rule needs a macro filter", ErrInvalidConfig)
	}

	if err := c.Indicators.Validate(); err != nil {
		return err
	}

	eb, ec, er := c.Entry.requires()
	xb, xc, xr := c.Exit.requires()
	if (eb || xb) && !c.Indicators.HasBands() {
		return fmt.Errorf("%w: %s/%s needs bands, none configured", ErrInvalidConfig, c.Entry, c.Exit)
	}
	if (ec || xc) && !c.Indicators.HasChannel() {
		return fmt.Errorf("%w: %s/%s needs a channel, none configured", ErrInvalidConfig, c.Entry, c.Exit)
	}
	if (er || xr) && !c.Indicators.HasRSI() {
		return fmt.Errorf("%w: %s/%s needs an oscillator, none configured", ErrInvalidConfig, c.Entry, c.Exit)
	}

	if er && (c.OscillatorEntry <= 0 || c.OscillatorEntry >= 100) {
		return fmt.Errorf("%w: oscillator entry threshold must be inside (0,100), got %v", ErrInvalidConfig, c.OscillatorEntry)
	}
	if xr && (c.OscillatorExit <= 0 || c.OscillatorExit >= 100) {
		return fmt.Errorf("%w: oscillator exit threshold must be inside (0,100), got %v", ErrInvalidConfig, c.OscillatorExit)
	}
	return nil
}

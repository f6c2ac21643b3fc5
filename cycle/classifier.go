package cycle

import (
	"errors"
	"fmt"
	"math"

	"github.com/mwhitlock/cycletrader/market"
)

// ErrUnclassified reports a period no rule matched. Classification
// recovers by carrying the previous label forward; the error only
// surfaces when an entire series has no classifiable period.
var ErrUnclassified = errors.New("unclassified period")

// Config holds the rule thresholds. Trend predicates compare the
// current snapshot with the one TrendLookback periods earlier.
type Config struct {
	TrendLookback        int     `yaml:"trend_lookback" json:"trend_lookback"`
	InversionThreshold   float64 `yaml:"inversion_threshold" json:"inversion_threshold"`
	RecoveryGrowthMax    float64 `yaml:"recovery_growth_max" json:"recovery_growth_max"`
	ElevatedUnemployment float64 `yaml:"elevated_unemployment" json:"elevated_unemployment"`
	LowUnemployment      float64 `yaml:"low_unemployment" json:"low_unemployment"`
	ModerateInflationMax float64 `yaml:"moderate_inflation_max" json:"moderate_inflation_max"`
}

// DefaultConfig returns the standard thresholds: 3-period trends,
// inversion below -0.2, recovery growth under 2.0 with unemployment
// above 6.0, expansion with unemployment under 5.0 and inflation under
// 4.0.
func DefaultConfig() Config {
	return Config{
		TrendLookback:        3,
		InversionThreshold:   -0.2,
		RecoveryGrowthMax:    2.0,
		ElevatedUnemployment: 6.0,
		LowUnemployment:      5.0,
		ModerateInflationMax: 4.0,
	}
}

// Validate checks the threshold set.
func (c Config) Validate() error {
	if c.TrendLookback < 1 {
		return fmt.Errorf("trend lookback must be at least 1, got %d", c.TrendLookback)
	}
	if c.RecoveryGrowthMax <= 0 {
		return fmt.Errorf("recovery growth ceiling must be positive, got %v", c.RecoveryGrowthMax)
	}
	return nil
}

// obs is one classification input: the current snapshot and the one
// TrendLookback periods earlier, when the series reaches back that far.
type obs struct {
	cur     market.MacroSnapshot
	prev    market.MacroSnapshot
	hasPrev bool
}

// NaN-safe comparisons: a missing observation never satisfies a
// predicate.
func below(v, limit float64) bool   { return !math.IsNaN(v) && v < limit }
func above(v, limit float64) bool   { return !math.IsNaN(v) && v > limit }
func atLeast(v, limit float64) bool { return !math.IsNaN(v) && v >= limit }

func rising(cur, prev float64) bool {
	return !math.IsNaN(cur) && !math.IsNaN(prev) && cur > prev
}

func falling(cur, prev float64) bool {
	return !math.IsNaN(cur) && !math.IsNaN(prev) && cur < prev
}

// The rule table. Evaluated in order, first match wins; deliberately a
// flat list of (label, predicate) pairs rather than nested branching.
type rule struct {
	label Label
	match func(o obs, c Config) bool
}

var rules = []rule{
	{Contraction, isContraction},
	{Peak, isPeak},
	{Recovery, isRecovery},
	{Expansion, isExpansion},
}

// isContraction: growth negative while unemployment trends up.
func isContraction(o obs, c Config) bool {
	return below(o.cur.Growth, 0) &&
		o.hasPrev && rising(o.cur.Unemployment, o.prev.Unemployment)
}

// isPeak: growth decelerating into an inverted yield curve.
func isPeak(o obs, c Config) bool {
	return o.hasPrev && falling(o.cur.Growth, o.prev.Growth) &&
		below(o.cur.YieldSpread, c.InversionThreshold)
}

// isRecovery: growth back above zero but still weak, unemployment
// elevated and coming down.
func isRecovery(o obs, c Config) bool {
	return atLeast(o.cur.Growth, 0) && below(o.cur.Growth, c.RecoveryGrowthMax) &&
		above(o.cur.Unemployment, c.ElevatedUnemployment) &&
		o.hasPrev && falling(o.cur.Unemployment, o.prev.Unemployment)
}

// isExpansion: non-negative growth, unemployment low or at least not
// rising, inflation moderate.
func isExpansion(o obs, c Config) bool {
	if !atLeast(o.cur.Growth, 0) {
		return false
	}
	u := o.cur.Unemployment
	lowOrSteady := below(u, c.LowUnemployment) ||
		(o.hasPrev && !math.IsNaN(u) && !math.IsNaN(o.prev.Unemployment) && u <= o.prev.Unemployment)
	return lowOrSteady && below(o.cur.Inflation, c.ModerateInflationMax)
}

// classifyPeriod runs the rule table over one observation.
func classifyPeriod(o obs, c Config) (Label, error) {
	for _, r := range rules {
		if r.match(o, c) {
			return r.label, nil
		}
	}
	return None, ErrUnclassified
}

// Classify labels every period of the macro series. Periods no rule
// matches inherit the previous label; leading periods with nothing to
// inherit are skipped and counted. The series must be time-ordered.
func Classify(ms []market.MacroSnapshot, c Config) (*Timeline, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := market.ValidateMacro(ms); err != nil {
		return nil, err
	}

	tl := &Timeline{}
	for i, cur := range ms {
		o := obs{cur: cur}
		if i >= c.TrendLookback {
			o.prev = ms[i-c.TrendLookback]
			o.hasPrev = true
		}

		label, err := classifyPeriod(o, c)
		if err != nil {
			if len(tl.Entries) == 0 {
				tl.SkippedLeading++
				continue
			}
			label = tl.Entries[len(tl.Entries)-1].Label
			tl.CarriedForward++
		}
		tl.Entries = append(tl.Entries, Entry{Time: cur.Time, Label: label})
	}

	if len(tl.Entries) == 0 {
		return nil, fmt.Errorf("no period matched any rule over %d snapshots: %w", len(ms), ErrUnclassified)
	}
	return tl, nil
}

package cycle

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitlock/cycletrader/market"
)

func month(n int) time.Time {
	return time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
}

func snap(n int, growth, unemp, infl, spread float64) market.MacroSnapshot {
	m := market.EmptyMacro(month(n))
	m.Growth = growth
	m.Unemployment = unemp
	m.Inflation = infl
	m.YieldSpread = spread
	return m
}

func pair(cur, prev market.MacroSnapshot) obs {
	return obs{cur: cur, prev: prev, hasPrev: true}
}

func TestContractionRule(t *testing.T) {
	cfg := DefaultConfig()
	nan := math.NaN()

	o := pair(snap(3, -1.0, 5.0, 2.0, 1.0), snap(0, 2.0, 4.0, 2.0, 1.0))
	assert.True(t, isContraction(o, cfg))

	// Growth negative but unemployment flat.
	o = pair(snap(3, -1.0, 4.0, 2.0, 1.0), snap(0, 2.0, 4.0, 2.0, 1.0))
	assert.False(t, isContraction(o, cfg))

	// Missing unemployment never matches.
	o = pair(snap(3, -1.0, nan, 2.0, 1.0), snap(0, 2.0, 4.0, 2.0, 1.0))
	assert.False(t, isContraction(o, cfg))

	// No prior period, no trend.
	assert.False(t, isContraction(obs{cur: snap(0, -1.0, 5.0, 2.0, 1.0)}, cfg))
}

func TestPeakRule(t *testing.T) {
	cfg := DefaultConfig()

	o := pair(snap(3, 1.0, 4.0, 3.0, -0.5), snap(0, 3.0, 4.0, 2.0, 0.1))
	assert.True(t, isPeak(o, cfg))

	// Curve not inverted enough.
	o = pair(snap(3, 1.0, 4.0, 3.0, -0.1), snap(0, 3.0, 4.0, 2.0, 0.1))
	assert.False(t, isPeak(o, cfg))

	// Growth accelerating.
	o = pair(snap(3, 4.0, 4.0, 3.0, -0.5), snap(0, 3.0, 4.0, 2.0, 0.1))
	assert.False(t, isPeak(o, cfg))
}

func TestRecoveryRule(t *testing.T) {
	cfg := DefaultConfig()

	o := pair(snap(3, 1.0, 7.0, 2.0, 1.0), snap(0, -1.0, 7.5, 2.0, 1.0))
	assert.True(t, isRecovery(o, cfg))

	// Growth already strong.
	o = pair(snap(3, 3.0, 7.0, 2.0, 1.0), snap(0, -1.0, 7.5, 2.0, 1.0))
	assert.False(t, isRecovery(o, cfg))

	// Unemployment not elevated.
	o = pair(snap(3, 1.0, 5.0, 2.0, 1.0), snap(0, -1.0, 5.5, 2.0, 1.0))
	assert.False(t, isRecovery(o, cfg))

	// Unemployment elevated but still climbing.
	o = pair(snap(3, 1.0, 8.0, 2.0, 1.0), snap(0, -1.0, 7.5, 2.0, 1.0))
	assert.False(t, isRecovery(o, cfg))
}

func TestExpansionRule(t *testing.T) {
	cfg := DefaultConfig()
	nan := math.NaN()

	// Low unemployment qualifies without any trend history.
	assert.True(t, isExpansion(obs{cur: snap(0, 3.0, 4.0, 2.0, 1.0)}, cfg))

	// Elevated but non-rising unemployment also qualifies.
	o := pair(snap(3, 3.0, 6.0, 2.0, 1.0), snap(0, 3.0, 6.0, 2.0, 1.0))
	assert.True(t, isExpansion(o, cfg))

	// Hot inflation disqualifies.
	assert.False(t, isExpansion(obs{cur: snap(0, 3.0, 4.0, 5.0, 1.0)}, cfg))

	// Zero growth still counts; negative does not.
	assert.True(t, isExpansion(obs{cur: snap(0, 0.0, 4.0, 2.0, 1.0)}, cfg))
	assert.False(t, isExpansion(obs{cur: snap(0, -0.1, 4.0, 2.0, 1.0)}, cfg))

	// Missing growth or unemployment never matches.
	assert.False(t, isExpansion(obs{cur: snap(0, nan, 4.0, 2.0, 1.0)}, cfg))
	assert.False(t, isExpansion(obs{cur: snap(0, 3.0, nan, 2.0, 1.0)}, cfg))
}

func TestRuleOrderContractionBeforePeak(t *testing.T) {
	cfg := DefaultConfig()
	// Satisfies both contraction and peak; the table must pick
	// contraction.
	o := pair(snap(3, -2.0, 6.0, 3.0, -0.5), snap(0, 1.0, 5.0, 2.0, 0.0))
	require.True(t, isContraction(o, cfg))
	require.True(t, isPeak(o, cfg))

	label, err := classifyPeriod(o, cfg)
	require.NoError(t, err)
	assert.Equal(t, Contraction, label)
}

func TestClassifySeries(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TrendLookback = 1

	nan := math.NaN()
	series := []market.MacroSnapshot{
		snap(0, nan, nan, nan, nan),   // unclassifiable, nothing to carry
		snap(1, 3.0, 4.0, 2.0, 1.0),   // expansion
		snap(2, 2.0, 4.0, 2.0, -0.5),  // peak: growth decelerating, curve inverted
		snap(3, -1.0, 6.0, 2.0, -0.3), // contraction: unemployment rising
		snap(4, -2.0, 7.5, 3.0, 0.0),  // contraction deepens
		snap(5, 1.0, 7.0, 2.0, 1.0),   // recovery
		snap(6, nan, nan, nan, nan),   // carried forward as recovery
		snap(7, 4.0, 4.5, 2.0, 1.0),   // expansion
	}

	tl, err := Classify(series, cfg)
	require.NoError(t, err)

	want := []Label{Expansion, Peak, Contraction, Contraction, Recovery, Recovery, Expansion}
	require.Len(t, tl.Entries, len(want))
	for i, e := range tl.Entries {
		assert.Equal(t, want[i], e.Label, "entry %d", i)
	}
	assert.Equal(t, 1, tl.SkippedLeading)
	assert.Equal(t, 1, tl.CarriedForward)

	// Gap-free from the first classifiable period onward.
	assert.Len(t, tl.Entries, len(series)-tl.SkippedLeading)
}

func TestClassifyAllUnclassifiable(t *testing.T) {
	series := []market.MacroSnapshot{
		market.EmptyMacro(month(0)),
		market.EmptyMacro(month(1)),
	}
	_, err := Classify(series, DefaultConfig())
	assert.ErrorIs(t, err, ErrUnclassified)
}

func TestClassifyValidation(t *testing.T) {
	_, err := Classify([]market.MacroSnapshot{snap(0, 3, 4, 2, 1)}, Config{})
	assert.Error(t, err)

	// Out of order input.
	series := []market.MacroSnapshot{snap(1, 3, 4, 2, 1), snap(0, 3, 4, 2, 1)}
	_, err = Classify(series, DefaultConfig())
	assert.Error(t, err)
}

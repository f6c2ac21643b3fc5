package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitlock/cycletrader/market"
)

func rampBars(n int) []market.Bar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, n)
	for i := range bars {
		c := 100 + float64(i)*0.5
		bars[i] = market.Bar{
			Time:   start.AddDate(0, 0, i),
			Open:   c - 0.2,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

// sameSnapshots compares tables treating NaN as equal to NaN.
func sameSnapshots(t *testing.T, a, b []Snapshot) {
	t.Helper()
	require.Equal(t, len(a), len(b))
	eq := func(x, y float64) bool {
		return (math.IsNaN(x) && math.IsNaN(y)) || x == y
	}
	for i := range a {
		assert.Equal(t, a[i].Time, b[i].Time, "index %d", i)
		assert.Equal(t, a[i].Squeeze, b[i].Squeeze, "index %d", i)
		pairs := [][2]float64{
			{a[i].Close, b[i].Close},
			{a[i].MA, b[i].MA},
			{a[i].UpperBand, b[i].UpperBand},
			{a[i].LowerBand, b[i].LowerBand},
			{a[i].RSI, b[i].RSI},
			{a[i].ATR, b[i].ATR},
			{a[i].KCMid, b[i].KCMid},
			{a[i].KCUpper, b[i].KCUpper},
			{a[i].KCLower, b[i].KCLower},
			{a[i].MACD, b[i].MACD},
			{a[i].MACDSignal, b[i].MACDSignal},
			{a[i].MACDHist, b[i].MACDHist},
		}
		for j, p := range pairs {
			assert.True(t, eq(p[0], p[1]), "index %d column %d: %v vs %v", i, j, p[0], p[1])
		}
	}
}

func TestComputeDefaultConfig(t *testing.T) {
	bars := rampBars(60)
	snaps, err := Compute(bars, DefaultConfig())
	require.NoError(t, err)
	require.Len(t, snaps, 60)

	// Warm-up rows stay NaN per family.
	assert.True(t, math.IsNaN(snaps[18].MA))
	assert.False(t, math.IsNaN(snaps[19].MA))
	assert.True(t, math.IsNaN(snaps[13].RSI))
	assert.False(t, math.IsNaN(snaps[14].RSI))
	assert.True(t, math.IsNaN(snaps[13].ATR))
	assert.False(t, math.IsNaN(snaps[14].ATR))
	assert.True(t, math.IsNaN(snaps[19].KCUpper))
	assert.False(t, math.IsNaN(snaps[20].KCUpper))
	assert.True(t, math.IsNaN(snaps[32].MACDSignal))
	assert.False(t, math.IsNaN(snaps[33].MACDSignal))

	for i, s := range snaps {
		assert.Equal(t, bars[i].Time, s.Time)
		assert.Equal(t, bars[i].Close, s.Close)
	}
}

func TestComputeDeterministic(t *testing.T) {
	bars := rampBars(80)
	first, err := Compute(bars, DefaultConfig())
	require.NoError(t, err)

	for run := 0; run < 3; run++ {
		again, err := Compute(bars, DefaultConfig())
		require.NoError(t, err)
		sameSnapshots(t, first, again)
	}
}

func TestComputeEmptyConfig(t *testing.T) {
	bars := rampBars(10)
	snaps, err := Compute(bars, Config{})
	require.NoError(t, err)
	require.Len(t, snaps, 10)

	for _, s := range snaps {
		assert.True(t, math.IsNaN(s.MA))
		assert.True(t, math.IsNaN(s.RSI))
		assert.True(t, math.IsNaN(s.KCUpper))
		assert.True(t, math.IsNaN(s.MACD))
		assert.False(t, s.Squeeze)
	}
	assert.Equal(t, 0, Config{}.Warmup())
}

func TestComputeSqueeze(t *testing.T) {
	// Flat closes keep the bands tight while wide high/low ranges blow
	// the channel out, so the bands sit inside the channel.
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, 10)
	for i := range bars {
		bars[i] = market.Bar{
			Time:  start.AddDate(0, 0, i),
			Open:  100,
			High:  103,
			Low:   97,
			Close: 100,
		}
	}

	cfg := Config{MAPeriod: 3, BandWidth: 2, ChannelPeriod: 3, ChannelMult: 2}
	snaps, err := Compute(bars, cfg)
	require.NoError(t, err)

	assert.False(t, snaps[2].Squeeze, "channel not defined yet")
	for i := 3; i < len(snaps); i++ {
		assert.True(t, snaps[i].Squeeze, "index %d", i)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"band period too small", Config{MAPeriod: 1, BandWidth: 2}},
		{"band width missing", Config{MAPeriod: 20}},
		{"negative rsi", Config{RSIPeriod: -1}},
		{"negative atr", Config{ATRPeriod: -5}},
		{"channel mult missing", Config{ChannelPeriod: 20}},
		{"macd partial", Config{MACDSlow: 26}},
		{"macd inverted", Config{MACDFast: 26, MACDSlow: 12, MACDSignal: 9}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.ErrorIs(t, c.cfg.Validate(), ErrInvalidParameter)
		})
	}

	assert.NoError(t, Config{}.Validate())
	assert.NoError(t, DefaultConfig().Validate())
}

func TestConfigWarmup(t *testing.T) {
	// MACD dominates the default set: 26 + 9 - 1.
	assert.Equal(t, 34, DefaultConfig().Warmup())

	assert.Equal(t, 20, Config{MAPeriod: 20, BandWidth: 2}.Warmup())
	assert.Equal(t, 15, Config{RSIPeriod: 14}.Warmup())
	assert.Equal(t, 21, Config{ChannelPeriod: 20, ChannelMult: 2}.Warmup())
}

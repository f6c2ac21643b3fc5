package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitlock/cycletrader/indicators"
)

func TestBuyAndHold(t *testing.T) {
	bars := flatBars(t, 100, 110, 105)
	res, err := BuyAndHold(bars, 1000)
	require.NoError(t, err)

	assert.Empty(t, res.Trades)
	require.NotNil(t, res.Open)
	assert.InDelta(t, 10.0, res.Open.Shares, 1e-9)
	assert.Equal(t, day(0), res.Open.EntryTime)

	require.Len(t, res.Equity, 3)
	assert.InDelta(t, 1000.0, res.Equity[0].Value, 1e-9)
	assert.InDelta(t, 1100.0, res.Equity[1].Value, 1e-9)
	assert.InDelta(t, 1050.0, res.FinalEquity, 1e-9)
}

func TestBuyAndHoldErrors(t *testing.T) {
	_, err := BuyAndHold(nil, 1000)
	assert.ErrorIs(t, err, indicators.ErrInsufficientData)

	_, err = BuyAndHold(flatBars(t, 100), 0)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

package market

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestValidateBars(t *testing.T) {
	ok := []Bar{{Time: day(0)}, {Time: day(1)}, {Time: day(2)}}
	assert.NoError(t, ValidateBars(ok))
	assert.NoError(t, ValidateBars(nil))

	dup := []Bar{{Time: day(0)}, {Time: day(0)}}
	assert.Error(t, ValidateBars(dup))

	backwards := []Bar{{Time: day(1)}, {Time: day(0)}}
	assert.Error(t, ValidateBars(backwards))
}

func TestValidateMacro(t *testing.T) {
	ok := []MacroSnapshot{EmptyMacro(day(0)), EmptyMacro(day(30))}
	assert.NoError(t, ValidateMacro(ok))

	dup := []MacroSnapshot{EmptyMacro(day(0)), EmptyMacro(day(0))}
	assert.Error(t, ValidateMacro(dup))
}

func TestEmptyMacro(t *testing.T) {
	m := EmptyMacro(day(0))
	assert.Equal(t, day(0), m.Time)
	for _, v := range []float64{m.Growth, m.Unemployment, m.Inflation, m.YieldSpread, m.Sentiment} {
		assert.True(t, math.IsNaN(v))
	}
}

func TestCloses(t *testing.T) {
	bars := []Bar{
		{Time: day(0), Close: 100},
		{Time: day(1), Close: 101.5},
	}
	assert.Equal(t, []float64{100, 101.5}, Closes(bars))
}

func TestParseFrequency(t *testing.T) {
	cases := []struct {
		in   string
		want Frequency
		ppy  float64
	}{
		{"daily", Daily, 252},
		{"Weekly", Weekly, 52},
		{"monthly", Monthly, 12},
		{"hourly", Hourly, 1638},
		{"30min", ThirtyMin, 3276},
		{"30m", ThirtyMin, 3276},
		{"", Daily, 252},
	}
	for _, c := range cases {
		f, err := ParseFrequency(c.in)
		assert.NoError(t, err, c.in)
		assert.Equal(t, c.want, f, c.in)
		assert.Equal(t, c.ppy, f.PeriodsPerYear(), c.in)
	}

	_, err := ParseFrequency("fortnightly")
	assert.Error(t, err)
}

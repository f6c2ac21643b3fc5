package indicators

import (
	"fmt"
	"math"

	"github.com/mwhitlock/cycletrader/market"
)

// TrueRange is the largest of high-low, |high-prevClose| and
// |low-prevClose|.
func TrueRange(cur, prev market.Bar) float64 {
	highLow := cur.High - cur.Low
	highClose := math.Abs(cur.High - prev.Close)
	lowClose := math.Abs(cur.Low - prev.Close)
	return math.Max(highLow, math.Max(highClose, lowClose))
}

// ATR calculates the Average True Range with Wilder smoothing: seeded
// with the SMA of the first period true ranges, then
// atr = (atr*(period-1) + tr) / period.
//
// True range needs the previous bar, so values before index period are
// NaN and the first defined value sits at index period.
func ATR(bars []market.Bar, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: atr period must be positive, got %d", ErrInvalidParameter, period)
	}

	out := nanSlice(len(bars))
	if len(bars) < period+1 {
		return out, nil
	}

	sum := 0.0
	for i := 1; i <= period; i++ {
		sum += TrueRange(bars[i], bars[i-1])
	}
	atr := sum / float64(period)
	out[period] = atr

	for i := period + 1; i < len(bars); i++ {
		tr := TrueRange(bars[i], bars[i-1])
		atr = (atr*float64(period-1) + tr) / float64(period)
		out[i] = atr
	}
	return out, nil
}

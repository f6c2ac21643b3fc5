package indicators

import (
	"fmt"

	"github.com/mwhitlock/cycletrader/market"
)

// Channel holds the Keltner channel column set.
type Channel struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Keltner calculates the channel as EMA(close, period) +/- mult *
// ATR(period). A value is defined once both parts are, which is index
// period onward.
func Keltner(bars []market.Bar, period int, mult float64) (Channel, error) {
	if period <= 0 {
		return Channel{}, fmt.Errorf("%w: channel period must be positive, got %d", ErrInvalidParameter, period)
	}
	if mult <= 0 {
		return Channel{}, fmt.Errorf("%w: channel multiplier must be positive, got %v", ErrInvalidParameter, mult)
	}

	middle, err := EMA(market.Closes(bars), period)
	if err != nil {
		return Channel{}, err
	}
	atr, err := ATR(bars, period)
	if err != nil {
		return Channel{}, err
	}

	upper := nanSlice(len(bars))
	lower := nanSlice(len(bars))
	for i := range bars {
		upper[i] = middle[i] + mult*atr[i]
		lower[i] = middle[i] - mult*atr[i]
	}
	return Channel{Upper: upper, Middle: middle, Lower: lower}, nil
}

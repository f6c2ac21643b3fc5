package indicators

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Bands holds the Bollinger band column set.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// RollingStd calculates the rolling sample standard deviation (n-1
// denominator). Values before index period-1 are NaN.
func RollingStd(values []float64, period int) ([]float64, error) {
	if period < 2 {
		return nil, fmt.Errorf("%w: std period must be at least 2, got %d", ErrInvalidParameter, period)
	}

	out := nanSlice(len(values))
	for i := period - 1; i < len(values); i++ {
		out[i] = stat.StdDev(values[i-period+1:i+1], nil)
	}
	return out, nil
}

// Bollinger calculates bands at middle +/- width standard deviations,
// with middle = SMA(period).
func Bollinger(values []float64, period int, width float64) (Bands, error) {
	if period < 2 {
		return Bands{}, fmt.Errorf("%w: band period must be at least 2, got %d", ErrInvalidParameter, period)
	}
	if width <= 0 {
		return Bands{}, fmt.Errorf("%w: band width must be positive, got %v", ErrInvalidParameter, width)
	}

	middle, err := SMA(values, period)
	if err != nil {
		return Bands{}, err
	}
	std, err := RollingStd(values, period)
	if err != nil {
		return Bands{}, err
	}

	upper := nanSlice(len(values))
	lower := nanSlice(len(values))
	for i := range values {
		upper[i] = middle[i] + width*std[i]
		lower[i] = middle[i] - width*std[i]
	}
	return Bands{Upper: upper, Middle: middle, Lower: lower}, nil
}

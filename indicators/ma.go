package indicators

import "fmt"

// SMA calculates the Simple Moving Average over the series.
// Values before index period-1 are NaN.
func SMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: sma period must be positive, got %d", ErrInvalidParameter, period)
	}

	out := nanSlice(len(values))
	if len(values) < period {
		return out, nil
	}

	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			out[i] = sum / float64(period)
		}
	}
	return out, nil
}

// EMA calculates the Exponential Moving Average over the series.
//
// The first value is seeded with the SMA of the first period elements,
// so values before index period-1 are NaN.
func EMA(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: ema period must be positive, got %d", ErrInvalidParameter, period)
	}

	out := nanSlice(len(values))
	if len(values) < period {
		return out, nil
	}

	seed := 0.0
	for i := 0; i < period; i++ {
		seed += values[i]
	}
	ema := seed / float64(period)
	out[period-1] = ema

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(values); i++ {
		ema = (values[i]-ema)*multiplier + ema
		out[i] = ema
	}
	return out, nil
}

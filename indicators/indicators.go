// Package indicators computes technical analysis series over price bars.
//
// Every function is batch style: it takes the whole ordered series and
// returns a slice of the same length, with NaN for elements inside the
// indicator's warm-up window. Warm-up is never an error; parameter
// problems are.
package indicators

import (
	"errors"
	"math"
)

var (
	// ErrInvalidParameter reports an indicator parameter outside its domain,
	// such as a non-positive period.
	ErrInvalidParameter = errors.New("invalid indicator parameter")

	// ErrInsufficientData reports a series shorter than the longest warm-up
	// the run requires.
	ErrInsufficientData = errors.New("insufficient data")
)

func nanSlice(n int) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.NaN()
	}
	return s
}

package market

import (
	"fmt"
	"time"
)

// Bar is one OHLCV price bar. Bars are value types; a series is an
// ordered []Bar with strictly increasing timestamps.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// ValidateBars rejects a series with out-of-order or duplicate
// timestamps. Loaders call this before handing bars to the engine.
func ValidateBars(bars []Bar) error {
	for i := 1; i < len(bars); i++ {
		if !bars[i].Time.After(bars[i-1].Time) {
			return fmt.Errorf("bar %d (%s) not after bar %d (%s)",
				i, bars[i].Time.Format(time.RFC3339),
				i-1, bars[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Closes extracts the close column from a bar series.
func Closes(bars []Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Close
	}
	return out
}

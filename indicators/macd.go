package indicators

import "fmt"

// MACDLines holds the MACD column set.
type MACDLines struct {
	Line   []float64
	Signal []float64
	Hist   []float64
}

// MACD calculates EMA(fast) - EMA(slow), a signal EMA of that line,
// and the histogram between them. The line is defined from index
// slow-1, the signal and histogram from index slow+signal-2.
func MACD(values []float64, fast, slow, signal int) (MACDLines, error) {
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return MACDLines{}, fmt.Errorf("%w: macd periods must be positive, got %d/%d/%d",
			ErrInvalidParameter, fast, slow, signal)
	}
	if fast >= slow {
		return MACDLines{}, fmt.Errorf("%w: macd fast period %d must be shorter than slow %d",
			ErrInvalidParameter, fast, slow)
	}

	fastEMA, err := EMA(values, fast)
	if err != nil {
		return MACDLines{}, err
	}
	slowEMA, err := EMA(values, slow)
	if err != nil {
		return MACDLines{}, err
	}

	n := len(values)
	line := nanSlice(n)
	for i := range values {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	sig := nanSlice(n)
	if defined := n - (slow - 1); defined > 0 {
		seg, err := EMA(line[slow-1:], signal)
		if err != nil {
			return MACDLines{}, err
		}
		copy(sig[slow-1:], seg)
	}

	hist := nanSlice(n)
	for i := range values {
		hist[i] = line[i] - sig[i]
	}
	return MACDLines{Line: line, Signal: sig, Hist: hist}, nil
}

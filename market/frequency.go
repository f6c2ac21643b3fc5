package market

import (
	"fmt"
	"strings"
)

// Frequency is the cadence of a bar series. It fixes how many periods
// make up a year when annualizing returns and volatility.
type Frequency int

const (
	Daily Frequency = iota
	Weekly
	Monthly
	Hourly
	ThirtyMin
)

// PeriodsPerYear for the cadence. Daily assumes 252 trading days;
// intraday cadences assume a 6.5 hour session, so 30-minute bars come
// to 252 x 13 = 3276.
func (f Frequency) PeriodsPerYear() float64 {
	switch f {
	case Weekly:
		return 52
	case Monthly:
		return 12
	case Hourly:
		return 1638
	case ThirtyMin:
		return 3276
	default:
		return 252
	}
}

func (f Frequency) String() string {
	switch f {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	case Hourly:
		return "hourly"
	case ThirtyMin:
		return "30min"
	default:
		return "daily"
	}
}

// ParseFrequency maps a config string to a Frequency.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "1d", "":
		return Daily, nil
	case "weekly", "1w":
		return Weekly, nil
	case "monthly", "1mo":
		return Monthly, nil
	case "hourly", "1h":
		return Hourly, nil
	case "30min", "30m":
		return ThirtyMin, nil
	}
	return Daily, fmt.Errorf("unknown frequency %q", s)
}

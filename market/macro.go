package market

import (
	"fmt"
	"math"
	"time"
)

// MacroSnapshot is one period of macroeconomic observations. A field
// with no observation is NaN; classifier predicates never match on a
// missing field.
type MacroSnapshot struct {
	Time         time.Time
	Growth       float64 // real GDP growth, percent annualized
	Unemployment float64 // percent of labor force
	Inflation    float64 // CPI, percent year over year
	YieldSpread  float64 // 10y minus 2y treasury, percentage points
	Sentiment    float64 // consumer sentiment index, unused by the rule table
}

// EmptyMacro returns a snapshot with every observation missing. The
// zero value is unusable here: 0.0 is a real reading for every field.
func EmptyMacro(t time.Time) MacroSnapshot {
	nan := math.NaN()
	return MacroSnapshot{
		Time:         t,
		Growth:       nan,
		Unemployment: nan,
		Inflation:    nan,
		YieldSpread:  nan,
		Sentiment:    nan,
	}
}

// ValidateMacro rejects a series with out-of-order or duplicate
// timestamps.
func ValidateMacro(ms []MacroSnapshot) error {
	for i := 1; i < len(ms); i++ {
		if !ms[i].Time.After(ms[i-1].Time) {
			return fmt.Errorf("macro period %d (%s) not after period %d (%s)",
				i, ms[i].Time.Format(time.RFC3339),
				i-1, ms[i-1].Time.Format(time.RFC3339))
		}
	}
	return nil
}

// Package cycle classifies macroeconomic periods into business cycle
// stages and exposes the resulting timeline to the backtest engine.
package cycle

import (
	"fmt"
	"strings"
)

// Label is a business cycle stage. The zero value None marks periods
// and trades with no classification available.
type Label int

const (
	None Label = iota
	Expansion
	Peak
	Contraction
	Recovery
)

func (l Label) String() string {
	switch l {
	case Expansion:
		return "Expansion"
	case Peak:
		return "Peak"
	case Contraction:
		return "Contraction"
	case Recovery:
		return "Recovery"
	default:
		return "Unknown"
	}
}

// Labels lists the four stages in rule-table order.
func Labels() []Label {
	return []Label{Expansion, Peak, Contraction, Recovery}
}

// ParseLabel maps a config string to a Label.
func ParseLabel(s string) (Label, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "expansion":
		return Expansion, nil
	case "peak":
		return Peak, nil
	case "contraction":
		return Contraction, nil
	case "recovery":
		return Recovery, nil
	}
	return None, fmt.Errorf("unknown cycle label %q", s)
}

// Package dataset loads bar and macro series from CSV files and
// generates deterministic synthetic series for demos and tests. It is
// the in-repo stand-in for an external data provider: everything is
// fully loaded into memory before the core ever sees it.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mwhitlock/cycletrader/market"
)

// LoadBars reads bar rows:
//
//	time,open,high,low,close[,volume]
//
// where time is RFC3339 or a plain date. A header row is allowed and
// empty/short rows are skipped. Rows outside [from, to) are dropped
// when either bound is set. The resulting series must be strictly
// time-ordered with positive prices.
func LoadBars(path string, from, to time.Time) ([]market.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var bars []market.Bar
	sawFirst := false
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}

		// Allow a single header row.
		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		b, ok, err := parseBarRow(row)
		if err != nil {
			return nil, err
		}
		if !ok || !inRange(b.Time, from, to) {
			continue
		}
		bars = append(bars, b)
	}

	if err := market.ValidateBars(bars); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("bars", len(bars)).Msg("loaded bar series")
	return bars, nil
}

func parseBarRow(row []string) (market.Bar, bool, error) {
	// Need at least: time,open,high,low,close
	if len(row) < 5 {
		return market.Bar{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return market.Bar{}, false, nil
	}
	t, err := parseTime(ts)
	if err != nil {
		return market.Bar{}, false, err
	}

	var b market.Bar
	b.Time = t
	fields := []*float64{&b.Open, &b.High, &b.Low, &b.Close}
	names := []string{"open", "high", "low", "close"}
	for i, dst := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return market.Bar{}, false, fmt.Errorf("bad %s %q: %w", names[i], row[i+1], err)
		}
		if v <= 0 {
			return market.Bar{}, false, fmt.Errorf("bad %s %v: prices must be positive", names[i], v)
		}
		*dst = v
	}
	if b.High < b.Low {
		return market.Bar{}, false, fmt.Errorf("bar at %s: high %v below low %v", ts, b.High, b.Low)
	}

	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		vol, err := strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return market.Bar{}, false, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
		b.Volume = vol
	}
	return b, true, nil
}

// parseTime accepts RFC3339, RFC3339Nano, or a bare date.
func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad time %q: %w", s, err)
	}
	return t, nil
}

func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}

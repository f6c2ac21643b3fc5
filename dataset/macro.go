package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mwhitlock/cycletrader/market"
)

var nan = math.NaN()

// LoadMacro reads macro rows:
//
//	time,growth,unemployment,inflation,yield_spread[,sentiment]
//
// Empty cells are missing observations and come back as NaN, matching
// how providers publish series at different cadences. A header row is
// allowed. Rows outside [from, to) are dropped when either bound is
// set.
func LoadMacro(path string, from, to time.Time) ([]market.MacroSnapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var series []market.MacroSnapshot
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

		if !sawFirst {
			sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		ms, ok, err := parseMacroRow(row)
		if err != nil {
			return nil, err
		}
		if !ok || !inRange(ms.Time, from, to) {
			continue
		}
		series = append(series, ms)
	}

	if err := market.ValidateMacro(series); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("periods", len(series)).Msg("loaded macro series")
	return series, nil
}

func parseMacroRow(row []string) (market.MacroSnapshot, bool, error) {
	// Need at least: time,growth,unemployment,inflation,yield_spread
	if len(row) < 5 {
		return market.MacroSnapshot{}, false, nil
	}

	ts := strings.TrimSpace(row[0])
	if ts == "" {
		return market.MacroSnapshot{}, false, nil
	}
	t, err := parseTime(ts)
	if err != nil {
		return market.MacroSnapshot{}, false, err
	}

	ms := market.EmptyMacro(t)
	fields := []*float64{&ms.Growth, &ms.Unemployment, &ms.Inflation, &ms.YieldSpread, &ms.Sentiment}
	names := []string{"growth", "unemployment", "inflation", "yield_spread", "sentiment"}
	for i, dst := range fields {
		col := i + 1
		if col >= len(row) {
			break
		}
		v, err := parseOptFloat(row[col])
		if err != nil {
			return market.MacroSnapshot{}, false, fmt.Errorf("bad %s %q: %w", names[i], row[col], err)
		}
		*dst = v
	}
	return ms, true, nil
}

// parseOptFloat treats empty and NA-style cells as missing (NaN).
func parseOptFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "na", "nan", "null":
		return nan, nil
	}
	return strconv.ParseFloat(s, 64)
}

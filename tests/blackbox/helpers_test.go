//go:build blackbox

package blackbox

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"
)

func contains(s, sub string) bool { return strings.Contains(s, sub) }

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeBarsCSV emits n daily bars with closes from price(i), highs and
// lows straddling the close by half a point.
func writeBarsCSV(t *testing.T, path string, n int, price func(i int) float64) {
	t.Helper()

	var b strings.Builder
	b.WriteString("time,open,high,low,close,volume\n")

	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		c := price(i)
		fmt.Fprintf(&b, "%s,%.4f,%.4f,%.4f,%.4f,1000\n",
			start.AddDate(0, 0, i).Format(time.RFC3339),
			c, c+0.5, c-0.5, c)
	}
	writeFile(t, path, b.String())
}

// writeMacroCSV emits monthly macro rows: six expansion months
// followed by six contraction months.
func writeMacroCSV(t *testing.T, path string) {
	t.Helper()

	var b strings.Builder
	b.WriteString("time,growth,unemployment,inflation,yield_spread,sentiment\n")

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		var growth, unemp float64
		if i < 6 {
			growth = 3.0
			unemp = 4.5
		} else {
			growth = -1.5
			unemp = 5.0 + 0.4*float64(i-5)
		}
		fmt.Fprintf(&b, "%s,%.2f,%.2f,2.50,1.50,85\n",
			start.AddDate(0, i, 0).Format("2006-01-02"), growth, unemp)
	}
	writeFile(t, path, b.String())
}

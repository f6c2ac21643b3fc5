//go:build blackbox

package blackbox

import (
	"database/sql"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func TestBacktestJournalsRun(t *testing.T) {
	dir := t.TempDir()
	barsPath := filepath.Join(dir, "bars.csv")
	macroPath := filepath.Join(dir, "macro.csv")
	dbPath := filepath.Join(dir, "runs.db")
	cfgPath := filepath.Join(dir, "run.yaml")

	// A gentle sine over 60 days keeps prices positive and orderly.
	writeBarsCSV(t, barsPath, 60, func(i int) float64 {
		return 100 + 5*math.Sin(float64(i)/6)
	})
	writeMacroCSV(t, macroPath)

	writeFile(t, cfgPath, fmt.Sprintf(`
data:
  bars: %s
  macro: %s
  frequency: daily
strategy:
  initial_capital: 10000
  entry: band-oscillator
  exit: middle-band
  stop_loss_pct: 0.05
  filter: [Expansion]
journal:
  type: sqlite
  db_path: %s
`, barsPath, macroPath, dbPath))

	out := run(t, "backtest", "--config", cfgPath)

	if !contains(out, "Cycle Backtest") {
		t.Fatalf("expected report header, got:\n%s", out)
	}
	if !contains(out, "Buy & Hold") {
		t.Fatalf("expected benchmark column, got:\n%s", out)
	}
	if !contains(out, "Cycle Stages") || !contains(out, "Expansion") {
		t.Fatalf("expected stage section, got:\n%s", out)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	var runs int
	if err := db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs); err != nil {
		t.Fatal(err)
	}
	if runs != 1 {
		t.Fatalf("expected 1 journaled run, got %d", runs)
	}

	var equity int
	if err := db.QueryRow(`SELECT COUNT(*) FROM equity`).Scan(&equity); err != nil {
		t.Fatal(err)
	}
	if equity != 60 {
		t.Fatalf("expected 60 equity points, got %d", equity)
	}
}

func TestClassifyPrintsTimeline(t *testing.T) {
	dir := t.TempDir()
	macroPath := filepath.Join(dir, "macro.csv")
	writeMacroCSV(t, macroPath)

	out := run(t, "classify", "--macro", macroPath)

	if !contains(out, "Cycle Classification") {
		t.Fatalf("expected header, got:\n%s", out)
	}
	if !contains(out, "Expansion") || !contains(out, "Contraction") {
		t.Fatalf("expected both stages, got:\n%s", out)
	}
	if !contains(out, "Expansion -> Contraction") {
		t.Fatalf("expected transition line, got:\n%s", out)
	}
}

func TestDemoClassifyIsDeterministic(t *testing.T) {
	dir := t.TempDir()

	first := runIn(t, dir, "demo", "classify", "--seed", "7")
	second := runIn(t, dir, "demo", "classify", "--seed", "7")

	if first != second {
		t.Fatalf("same seed should print the same report:\n%s\n---\n%s", first, second)
	}
	if !contains(first, "Stage Distribution") {
		t.Fatalf("expected distribution section, got:\n%s", first)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "run.yaml")

	out := run(t, "config", "init", "--output", cfgPath)
	if !contains(out, cfgPath) {
		t.Fatalf("expected output path in message, got:\n%s", out)
	}

	// The generated file needs data paths before it validates.
	good := filepath.Join(dir, "good.yaml")
	writeFile(t, good, "data:\n  bars: bars.csv\n  frequency: daily\n")

	out = run(t, "config", "validate", "--file", good)
	if !contains(out, "Run file valid") {
		t.Fatalf("expected validation success, got:\n%s", out)
	}
}

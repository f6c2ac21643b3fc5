package cmd

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/mwhitlock/cycletrader/backtest"
	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/journal"
	"github.com/mwhitlock/cycletrader/perf"
)

// RunSummary bundles everything the text report needs: the journaled
// run, strategy and benchmark metrics, and the stage timeline when
// macro data was supplied.
type RunSummary struct {
	Run       journal.RunRecord
	Strategy  perf.Metrics
	Benchmark perf.Metrics
	Timeline  *cycle.Timeline
	Open      *backtest.Position
}

func PrintRunSummary(w io.Writer, s RunSummary) {
	r := s.Run

	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Cycle Backtest")
	fmt.Fprintln(w, "==================================================")

	fmt.Fprintf(w, "Run ID:        %s\n", r.RunID)
	fmt.Fprintf(w, "Dataset:       %s\n", r.Dataset)
	fmt.Fprintf(w, "Frequency:     %s\n", r.Frequency)
	fmt.Fprintf(w, "Entry:         %s\n", r.Entry)
	fmt.Fprintf(w, "Exit:          %s\n", r.Exit)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Period")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Start:         %s\n", r.Start.Format(time.RFC3339))
	fmt.Fprintf(w, "End:           %s\n", r.End.Format(time.RFC3339))

	if s.Timeline != nil {
		printTimeline(w, s.Timeline)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Performance                Strategy    Buy & Hold")
	fmt.Fprintln(w, "--------------------------------------------------")
	printRow(w, "Total Return", pct(s.Strategy.TotalReturn), pct(s.Benchmark.TotalReturn))
	printRow(w, "Annualized", pct(s.Strategy.AnnualizedReturn), pct(s.Benchmark.AnnualizedReturn))
	printRow(w, "Volatility", pct(s.Strategy.Volatility), pct(s.Benchmark.Volatility))
	printRow(w, "Sharpe Ratio", num(s.Strategy.SharpeRatio), num(s.Benchmark.SharpeRatio))
	printRow(w, "Max Drawdown", pct(s.Strategy.MaxDrawdown), pct(s.Benchmark.MaxDrawdown))
	printRow(w, "Final Equity", money(s.Strategy.FinalEquity), money(s.Benchmark.FinalEquity))

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Trade Statistics")
	fmt.Fprintln(w, "--------------------------------------------------")
	fmt.Fprintf(w, "Trades:        %d\n", s.Strategy.Trades)
	fmt.Fprintf(w, "Wins:          %d\n", s.Strategy.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", s.Strategy.Losses)
	fmt.Fprintf(w, "Win Rate:      %s\n", pct(s.Strategy.WinRate))
	fmt.Fprintf(w, "Avg Return:    %s\n", pct(s.Strategy.AvgReturn))
	fmt.Fprintf(w, "Avg Win:       %s\n", pct(s.Strategy.AvgWin))
	fmt.Fprintf(w, "Avg Loss:      %s\n", pct(s.Strategy.AvgLoss))
	fmt.Fprintf(w, "Best Trade:    %s\n", pct(s.Strategy.BestTrade))
	fmt.Fprintf(w, "Worst Trade:   %s\n", pct(s.Strategy.WorstTrade))
	fmt.Fprintf(w, "Profit Factor: %s\n", num(s.Strategy.ProfitFactor))
	fmt.Fprintf(w, "Stop Exits:    %d\n", s.Strategy.StopLossExits)

	if s.Open != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Open position: %.4f shares from %s at %.4f (marked to market)\n",
			s.Open.Shares, s.Open.EntryTime.Format("2006-01-02"), s.Open.EntryPrice)
	}

	fmt.Fprintln(w)
}

func printTimeline(w io.Writer, tl *cycle.Timeline) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Cycle Stages")
	fmt.Fprintln(w, "--------------------------------------------------")

	dist := tl.Distribution()
	total := len(tl.Entries)
	for _, label := range cycle.Labels() {
		n := dist[label]
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "%-14s %4d periods (%.1f%%)\n", label.String()+":", n, 100*float64(n)/float64(total))
	}
	fmt.Fprintf(w, "Transitions:   %d\n", len(tl.Transitions()))
	if tl.CarriedForward > 0 {
		fmt.Fprintf(w, "Carried:       %d unclassified periods kept their prior stage\n", tl.CarriedForward)
	}
	if tl.SkippedLeading > 0 {
		fmt.Fprintf(w, "Skipped:       %d leading periods before the first match\n", tl.SkippedLeading)
	}
}

func printRow(w io.Writer, name, strat, bench string) {
	fmt.Fprintf(w, "%-22s %11s %13s\n", name+":", strat, bench)
}

// printTransitions lists every stage change with its timestamp.
func printTransitions(w io.Writer, tl *cycle.Timeline) {
	transitions := tl.Transitions()
	if len(transitions) == 0 {
		fmt.Fprintln(w, "No stage transitions in this range.")
		return
	}
	for _, tr := range transitions {
		fmt.Fprintf(w, "%s  %s -> %s\n", tr.Time.Format("2006-01-02"), tr.From, tr.To)
	}
}

// printDistribution lists stage shares sorted by count.
func printDistribution(w io.Writer, tl *cycle.Timeline) {
	dist := tl.Distribution()
	total := len(tl.Entries)

	type share struct {
		label cycle.Label
		n     int
	}
	shares := make([]share, 0, len(dist))
	for label, n := range dist {
		shares = append(shares, share{label, n})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].n != shares[j].n {
			return shares[i].n > shares[j].n
		}
		return shares[i].label < shares[j].label
	})

	for _, s := range shares {
		fmt.Fprintf(w, "%-14s %4d periods (%.1f%%)\n", s.label.String()+":", s.n, 100*float64(s.n)/float64(total))
	}
}

func pct(x float64) string {
	if math.IsNaN(x) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f%%", x*100)
}

func num(x float64) string {
	if math.IsNaN(x) {
		return "undefined"
	}
	return fmt.Sprintf("%.2f", x)
}

func money(x float64) string {
	if math.IsNaN(x) {
		return "undefined"
	}
	return fmt.Sprintf("$%.2f", x)
}

package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mwhitlock/cycletrader/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query journaled runs",
	Long: `Query and display journaled runs from a SQLite database.

Subcommands:
  runs   - List all journaled runs
  run    - Show one run as an Org report
  trades - Show a run's trades as Org subtrees

Examples:
  cycletrader journal runs
  cycletrader journal run 01HXAMPLE
  cycletrader journal trades 01HXAMPLE`,
}

var journalRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List all journaled runs",
	Args:  cobra.NoArgs,
	RunE:  runJournalRuns,
}

var journalRunCmd = &cobra.Command{
	Use:   "run <run-id>",
	Short: "Show one run as an Org report",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalRun,
}

var journalTradesCmd = &cobra.Command{
	Use:   "trades <run-id>",
	Short: "Show a run's trades",
	Args:  cobra.ExactArgs(1),
	RunE:  runJournalTrades,
}

var journalDBPath string

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalRunsCmd)
	journalCmd.AddCommand(journalRunCmd)
	journalCmd.AddCommand(journalTradesCmd)

	journalCmd.PersistentFlags().StringVarP(&journalDBPath, "db", "d", "./cycletrader.sqlite", "path to SQLite journal DB")
}

func runJournalRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("query runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs journaled yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tENTRY/EXIT\tRETURN\tSHARPE\tTRADES")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s/%s\t%s\t%s\t%d\n",
			r.RunID,
			r.Created.Format("2006-01-02 15:04"),
			r.Entry, r.Exit,
			pct(r.TotalReturn),
			num(r.SharpeRatio),
			r.Trades,
		)
	}
	return w.Flush()
}

func runJournalRun(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	run, err := j.GetRun(args[0])
	if err != nil {
		return err
	}
	trades, err := j.ListTradesByRun(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	report := journal.RunReport{Run: run, Trades: trades}
	out, err := report.Render()
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func runJournalTrades(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(journalDBPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	trades, err := j.ListTradesByRun(args[0])
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	if len(trades) == 0 {
		fmt.Println("No trades recorded for this run.")
		return nil
	}

	fmt.Println(journal.FormatTradesOrg(trades))
	return nil
}

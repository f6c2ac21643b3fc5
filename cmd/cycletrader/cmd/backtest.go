package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/mwhitlock/cycletrader/backtest"
	"github.com/mwhitlock/cycletrader/config"
	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/dataset"
	"github.com/mwhitlock/cycletrader/journal"
	"github.com/mwhitlock/cycletrader/market"
	"github.com/mwhitlock/cycletrader/perf"
	"github.com/mwhitlock/cycletrader/pkg/id"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy over historical bars",
	Long: `Backtest replays a bar series through the configured strategy and
compares the result against buy-and-hold on the same bars.

When the run file names a macro series, periods are classified into
cycle stages first; the strategy can then restrict entries to chosen
stages and force exits when the stage leaves the set.

Example:
  cycletrader backtest --config run.yaml`,
	RunE: runBacktest,
}

var btConfigPath string

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to run file (required)")
	backtestCmd.MarkFlagRequired("config")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(btConfigPath)
	if err != nil {
		return err
	}

	from, to, err := cfg.Range()
	if err != nil {
		return err
	}

	bars, err := dataset.LoadBars(cfg.Data.Bars, from, to)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}
	log.Info().Str("path", cfg.Data.Bars).Int("bars", len(bars)).Msg("bars loaded")

	var timeline *cycle.Timeline
	if cfg.Data.Macro != "" {
		macro, err := dataset.LoadMacro(cfg.Data.Macro, from, to)
		if err != nil {
			return fmt.Errorf("load macro: %w", err)
		}
		timeline, err = cycle.Classify(macro, cfg.Classifier)
		if err != nil {
			return fmt.Errorf("classify: %w", err)
		}
		log.Info().Int("periods", len(timeline.Entries)).
			Int("transitions", len(timeline.Transitions())).Msg("macro classified")
	}

	raw, err := os.ReadFile(btConfigPath)
	if err != nil {
		return err
	}

	return executeRun(cfg, bars, timeline, cfg.Data.Bars, raw)
}

// executeRun drives the engine over prepared inputs, prints the
// report, and journals the run when configured. The demo command
// reuses it with synthetic data.
func executeRun(cfg *config.Config, bars []market.Bar, timeline *cycle.Timeline, datasetName string, rawCfg []byte) error {
	bc, err := cfg.BacktestConfig()
	if err != nil {
		return err
	}
	freq, err := cfg.Frequency()
	if err != nil {
		return err
	}

	engine, err := backtest.New(bc)
	if err != nil {
		return err
	}
	res, err := engine.Run(bars, timeline)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	bench, err := backtest.BuyAndHold(bars, bc.InitialCapital)
	if err != nil {
		return fmt.Errorf("benchmark: %w", err)
	}

	metrics := perf.Compute(res, freq, cfg.Analytics.RiskFreeRate)
	benchMetrics := perf.Compute(bench, freq, cfg.Analytics.RiskFreeRate)

	run := journal.RunRecord{
		RunID:            id.New(),
		Created:          time.Now().UTC(),
		Dataset:          datasetName,
		Frequency:        freq.String(),
		Entry:            bc.Entry.String(),
		Exit:             bc.Exit.String(),
		Start:            bars[0].Time,
		End:              bars[len(bars)-1].Time,
		InitialCapital:   bc.InitialCapital,
		FinalEquity:      metrics.FinalEquity,
		TotalReturn:      metrics.TotalReturn,
		AnnualizedReturn: metrics.AnnualizedReturn,
		Volatility:       metrics.Volatility,
		SharpeRatio:      metrics.SharpeRatio,
		MaxDrawdown:      metrics.MaxDrawdown,
		Trades:           metrics.Trades,
		Wins:             metrics.Wins,
		Losses:           metrics.Losses,
		WinRate:          metrics.WinRate,
		ProfitFactor:     metrics.ProfitFactor,
		StopLossExits:    metrics.StopLossExits,
		Config:           rawCfg,
	}

	PrintRunSummary(os.Stdout, RunSummary{
		Run:       run,
		Strategy:  metrics,
		Benchmark: benchMetrics,
		Timeline:  timeline,
		Open:      res.Open,
	})

	return journalRun(cfg.Journal, run, res)
}

// journalRun persists the run when journaling is enabled.
func journalRun(jc config.JournalConfig, run journal.RunRecord, res *backtest.Result) error {
	j, err := openJournal(jc)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}

	var trades []journal.TradeRecord
	for _, t := range res.Trades {
		trades = append(trades, journal.TradeRecord{
			RunID:      run.RunID,
			TradeID:    id.New(),
			EntryTime:  t.EntryTime,
			ExitTime:   t.ExitTime,
			EntryPrice: t.EntryPrice,
			ExitPrice:  t.ExitPrice,
			Shares:     t.Shares,
			Return:     t.Return,
			Reason:     string(t.Reason),
			EntryStage: stageName(t.EntryLabel),
			ExitStage:  stageName(t.ExitLabel),
		})
	}

	if j != nil {
		defer j.Close()

		if err := j.RecordRun(run); err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		for _, tr := range trades {
			if err := j.RecordTrade(tr); err != nil {
				return fmt.Errorf("record trade: %w", err)
			}
		}
		for _, p := range res.Equity {
			err := j.RecordEquity(journal.EquityRecord{RunID: run.RunID, Time: p.Time, Value: p.Value})
			if err != nil {
				return fmt.Errorf("record equity: %w", err)
			}
		}
		log.Info().Str("run_id", run.RunID).Int("trades", len(trades)).Msg("run journaled")
	}

	if jc.OrgFile != "" {
		report := journal.RunReport{Run: run, Trades: trades}
		if err := report.WriteOrg(jc.OrgFile); err != nil {
			return fmt.Errorf("write org report: %w", err)
		}
		log.Info().Str("path", jc.OrgFile).Msg("org report written")
	}
	return nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "csv":
		return journal.NewCSV(jc.RunsFile, jc.TradesFile, jc.EquityFile)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}

func stageName(l cycle.Label) string {
	if l == cycle.None {
		return ""
	}
	return l.String()
}

package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends records to three flat files, one per record
// kind. Rows are flushed as they arrive so a crashed run still leaves
// everything written so far on disk.
type CSVJournal struct {
	runs   *csv.Writer
	trades *csv.Writer
	equity *csv.Writer
	rf     *os.File
	tf     *os.File
	ef     *os.File
}

func NewCSV(runsPath, tradesPath, equityPath string) (*CSVJournal, error) {
	rf, err := os.Create(runsPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		return nil, err
	}

	rw := csv.NewWriter(rf)
	tw := csv.NewWriter(tf)
	ew := csv.NewWriter(ef)

	if err := rw.Write([]string{
		"run_id", "created", "dataset", "frequency", "entry", "exit",
		"start", "end", "initial_capital", "final_equity",
		"total_return", "annualized_return", "volatility", "sharpe", "max_drawdown",
		"trades", "wins", "losses", "win_rate", "profit_factor", "stop_loss_exits",
	}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{
		"run_id", "trade_id", "entry_time", "exit_time", "entry_price", "exit_price",
		"shares", "return", "reason", "entry_stage", "exit_stage",
	}); err != nil {
		return nil, err
	}
	if err := ew.Write([]string{"run_id", "time", "value"}); err != nil {
		return nil, err
	}

	for _, w := range []*csv.Writer{rw, tw, ew} {
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
	}

	return &CSVJournal{rw, tw, ew, rf, tf, ef}, nil
}

func (j *CSVJournal) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Created.Format(time.RFC3339),
		r.Dataset,
		r.Frequency,
		r.Entry,
		r.Exit,
		r.Start.Format(time.RFC3339),
		r.End.Format(time.RFC3339),
		f(r.InitialCapital),
		f(r.FinalEquity),
		f(r.TotalReturn),
		f(r.AnnualizedReturn),
		f(r.Volatility),
		f(r.SharpeRatio),
		f(r.MaxDrawdown),
		strconv.Itoa(r.Trades),
		strconv.Itoa(r.Wins),
		strconv.Itoa(r.Losses),
		f(r.WinRate),
		f(r.ProfitFactor),
		strconv.Itoa(r.StopLossExits),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.trades.Write([]string{
		t.RunID,
		t.TradeID,
		t.EntryTime.Format(time.RFC3339),
		t.ExitTime.Format(time.RFC3339),
		f(t.EntryPrice),
		f(t.ExitPrice),
		f(t.Shares),
		f(t.Return),
		t.Reason,
		t.EntryStage,
		t.ExitStage,
	})
	if err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) RecordEquity(e EquityRecord) error {
	err := j.equity.Write([]string{
		e.RunID,
		e.Time.Format(time.RFC3339),
		f(e.Value),
	})
	if err != nil {
		return err
	}
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	for _, w := range []*csv.Writer{j.runs, j.trades, j.equity} {
		w.Flush()
		if err := w.Error(); err != nil {
			return err
		}
	}
	for _, fh := range []*os.File{j.rf, j.tf, j.ef} {
		if err := fh.Close(); err != nil {
			return err
		}
	}
	return nil
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

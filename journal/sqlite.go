package journal

import (
	"database/sql"
	"math"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite keeps every journaled run in a single database file, which
// makes cross-run comparison a SELECT away.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, dataset, frequency, entry, exit,
		 start_time, end_time, initial_capital, final_equity,
		 total_return, annualized_return, volatility, sharpe, max_drawdown,
		 trades, wins, losses, win_rate, profit_factor, stop_loss_exits, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Dataset, r.Frequency, r.Entry, r.Exit,
		r.Start, r.End, r.InitialCapital, r.FinalEquity,
		nullable(r.TotalReturn), nullable(r.AnnualizedReturn), nullable(r.Volatility),
		nullable(r.SharpeRatio), nullable(r.MaxDrawdown),
		r.Trades, r.Wins, r.Losses, nullable(r.WinRate), nullable(r.ProfitFactor),
		r.StopLossExits, r.Config,
	)
	return err
}

func (j *SQLite) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(trade_id, run_id, entry_time, exit_time, entry_price, exit_price,
		 shares, trade_return, reason, entry_stage, exit_stage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.TradeID, t.RunID, t.EntryTime, t.ExitTime, t.EntryPrice, t.ExitPrice,
		t.Shares, t.Return, t.Reason, t.EntryStage, t.ExitStage,
	)
	return err
}

func (j *SQLite) RecordEquity(e EquityRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, value) VALUES (?, ?, ?)`,
		e.RunID, e.Time, e.Value,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

// nullable maps NaN to NULL. Undefined metrics should read back as
// undefined, and SQLite has no NaN of its own.
func nullable(x float64) any {
	if math.IsNaN(x) {
		return nil
	}
	return x
}

func nanOr(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

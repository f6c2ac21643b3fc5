package journal

import (
	"database/sql"
	"fmt"
)

const runColumns = `run_id, created, dataset, frequency, entry, exit,
	start_time, end_time, initial_capital, final_equity,
	total_return, annualized_return, volatility, sharpe, max_drawdown,
	trades, wins, losses, win_rate, profit_factor, stop_loss_exits, config`

// GetRun returns a single journaled run by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`
		SELECT `+runColumns+`
		FROM runs
		WHERE run_id = ?`, runID)

	rec, err := scanRun(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return rec, nil
}

// ListRuns returns every journaled run, oldest first.
func (j *SQLite) ListRuns() ([]RunRecord, error) {
	rows, err := j.db.Query(`
		SELECT ` + runColumns + `
		FROM runs
		ORDER BY created ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (RunRecord, error) {
	var rec RunRecord
	var total, ann, vol, sharpe sql.NullFloat64
	var maxDD, winRate, profitFac sql.NullFloat64
	err := s.Scan(
		&rec.RunID, &rec.Created, &rec.Dataset, &rec.Frequency, &rec.Entry, &rec.Exit,
		&rec.Start, &rec.End, &rec.InitialCapital, &rec.FinalEquity,
		&total, &ann, &vol, &sharpe, &maxDD,
		&rec.Trades, &rec.Wins, &rec.Losses, &winRate, &profitFac,
		&rec.StopLossExits, &rec.Config,
	)
	if err != nil {
		return RunRecord{}, err
	}
	rec.TotalReturn = nanOr(total)
	rec.AnnualizedReturn = nanOr(ann)
	rec.Volatility = nanOr(vol)
	rec.SharpeRatio = nanOr(sharpe)
	rec.MaxDrawdown = nanOr(maxDD)
	rec.WinRate = nanOr(winRate)
	rec.ProfitFactor = nanOr(profitFac)
	return rec, nil
}

// ListTradesByRun returns a run's trades ordered by exit time.
func (j *SQLite) ListTradesByRun(runID string) ([]TradeRecord, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, run_id, entry_time, exit_time, entry_price, exit_price,
		       shares, trade_return, reason, entry_stage, exit_stage
		FROM trades
		WHERE run_id = ?
		ORDER BY exit_time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TradeRecord
	for rows.Next() {
		var rec TradeRecord
		if err := rows.Scan(
			&rec.TradeID,
			&rec.RunID,
			&rec.EntryTime,
			&rec.ExitTime,
			&rec.EntryPrice,
			&rec.ExitPrice,
			&rec.Shares,
			&rec.Return,
			&rec.Reason,
			&rec.EntryStage,
			&rec.ExitStage,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEquityByRun returns a run's equity curve in time order.
func (j *SQLite) ListEquityByRun(runID string) ([]EquityRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, value
		FROM equity
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []EquityRecord
	for rows.Next() {
		var rec EquityRecord
		if err := rows.Scan(&rec.RunID, &rec.Time, &rec.Value); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Package journal persists finished runs so they can be compared
// across strategy and classifier tweaks. The engine itself never
// writes anything; callers hand a finished run to the journal.
package journal

import "time"

// RunRecord is one journaled run: the setup that produced it and the
// headline numbers. Undefined metrics stay NaN.
type RunRecord struct {
	RunID     string
	Created   time.Time
	Dataset   string // bars source path, or "synthetic"
	Frequency string
	Entry     string
	Exit      string

	Start time.Time
	End   time.Time

	InitialCapital float64
	FinalEquity    float64

	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64
	SharpeRatio      float64
	MaxDrawdown      float64

	Trades        int
	Wins          int
	Losses        int
	WinRate       float64
	ProfitFactor  float64
	StopLossExits int

	// Resolved run file, kept verbatim so the run can be reproduced.
	Config []byte
}

type TradeRecord struct {
	RunID      string
	TradeID    string
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	Shares     float64
	Return     float64
	Reason     string
	EntryStage string
	ExitStage  string
}

type EquityRecord struct {
	RunID string
	Time  time.Time
	Value float64
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordTrade(TradeRecord) error
	RecordEquity(EquityRecord) error
	Close() error
}

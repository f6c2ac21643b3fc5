package backtest

import (
	"time"

	"github.com/mwhitlock/cycletrader/cycle"
)

// ExitReason records which trigger closed a trade.
type ExitReason string

const (
	ExitStopLoss     ExitReason = "STOP_LOSS"
	ExitProfitTarget ExitReason = "PROFIT_TARGET"
	ExitEconomic     ExitReason = "ECONOMIC"
	ExitTechnical    ExitReason = "TECHNICAL"
)

// Position is the single open long. At most one exists per run; flat
// is represented by its absence. The stop only ever moves up.
type Position struct {
	EntryTime  time.Time
	EntryPrice float64
	Shares     float64
	Stop       float64
	Target     float64 // 0 means no profit target
	EntryLabel cycle.Label
}

// Trade is the immutable record of a closed position.
type Trade struct {
	EntryTime  time.Time
	ExitTime   time.Time
	EntryPrice float64
	ExitPrice  float64
	Shares     float64
	Return     float64 // fractional: exit/entry - 1
	Reason     ExitReason
	EntryLabel cycle.Label
	ExitLabel  cycle.Label
}

// EquityPoint is the account value after processing one bar.
type EquityPoint struct {
	Time  time.Time
	Value float64
}

// Result is the complete output of one run. A position still open at
// the end of the data stays in Open and never appears in Trades; its
// mark-to-market is already part of the final equity point.
type Result struct {
	Equity         []EquityPoint
	Trades         []Trade
	Open           *Position
	InitialCapital float64
	FinalEquity    float64
}

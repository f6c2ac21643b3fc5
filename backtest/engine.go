// Package backtest replays a bar series through a long/flat position
// state machine and produces the trade and equity history of the run.
package backtest

import (
	"fmt"
	"time"

	"github.com/mwhitlock/cycletrader/cycle"
	"github.com/mwhitlock/cycletrader/indicators"
	"github.com/mwhitlock/cycletrader/market"
)

// Engine runs backtests for one validated Config. It holds no run
// state: repeated Run calls with identical inputs produce identical
// results.
type Engine struct {
	cfg       Config
	permitted map[cycle.Label]bool
}

// New validates cfg and builds an engine for it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	if len(cfg.Filter) > 0 {
		e.permitted = make(map[cycle.Label]bool, len(cfg.Filter))
		for _, l := range cfg.Filter {
			e.permitted[l] = true
		}
	}
	return e, nil
}

// Run walks the bars once in time order. Indicators are computed in
// full before the pass begins; the loop itself is pure state-machine
// transitions with no error paths.
//
// timeline may be nil when no macro filter is configured; trades then
// carry no cycle labels.
func (e *Engine) Run(bars []market.Bar, timeline *cycle.Timeline) (*Result, error) {
	if len(e.cfg.Filter) > 0 && timeline == nil {
		return nil, fmt.Errorf("%w: macro filter configured but no timeline supplied", ErrInvalidConfig)
	}
	if err := market.ValidateBars(bars); err != nil {
		return nil, err
	}
	if warm := e.cfg.Indicators.Warmup(); len(bars) < warm || len(bars) == 0 {
		return nil, fmt.Errorf("%w: need at least %d bars for indicator warm-up, got %d",
			indicators.ErrInsufficientData, max(warm, 1), len(bars))
	}

	snaps, err := indicators.Compute(bars, e.cfg.Indicators)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Equity:         make([]EquityPoint, 0, len(bars)),
		InitialCapital: e.cfg.InitialCapital,
	}
	cash := e.cfg.InitialCapital
	var pos *Position

	for i, bar := range bars {
		label, hasLabel := labelFor(timeline, bar.Time)

		if pos != nil {
			e.raiseStop(pos, bar, label, hasLabel)
			if px, reason, hit := e.checkExit(pos, bar, snaps[i], label, hasLabel); hit {
				cash = pos.Shares * px
				res.Trades = append(res.Trades, closedTrade(pos, bar.Time, px, reason, label, hasLabel))
				pos = nil
			}
		} else if e.canEnter(snaps[i], label, hasLabel) {
			pos = e.openPosition(cash, bar, label, hasLabel)
		}

		value := cash
		if pos != nil {
			value = pos.Shares * bar.Close
		}
		res.Equity = append(res.Equity, EquityPoint{Time: bar.Time, Value: value})
	}

	res.Open = pos
	res.FinalEquity = res.Equity[len(res.Equity)-1].Value
	return res, nil
}

// canEnter gates entries on the macro filter first, then the entry
// rule. A bar with no label available counts as outside the filter.
func (e *Engine) canEnter(s indicators.Snapshot, label cycle.Label, hasLabel bool) bool {
	if e.permitted != nil && !(hasLabel && e.permitted[label]) {
		return false
	}
	return e.cfg.Entry.signal(s, e.cfg.OscillatorEntry)
}

// openPosition fills at the bar close with the whole balance.
func (e *Engine) openPosition(cash float64, bar market.Bar, label cycle.Label, hasLabel bool) *Position {
	p := &Position{
		EntryTime:  bar.Time,
		EntryPrice: bar.Close,
		Shares:     cash / bar.Close,
		Stop:       bar.Close * (1 - e.cfg.StopLossPct),
	}
	if e.cfg.ProfitTargetPct > 0 {
		p.Target = bar.Close * (1 + e.cfg.ProfitTargetPct)
	}
	if hasLabel {
		p.EntryLabel = label
	}
	return p
}

// raiseStop applies trailing before exits are evaluated. The stop is
// only ever raised, including across label changes that loosen the
// trailing percent.
func (e *Engine) raiseStop(p *Position, bar market.Bar, label cycle.Label, hasLabel bool) {
	trail, ok := e.trailPct(label, hasLabel)
	if !ok {
		return
	}
	if s := bar.Close * (1 - trail); s > p.Stop {
		p.Stop = s
	}
}

func (e *Engine) trailPct(label cycle.Label, hasLabel bool) (float64, bool) {
	if hasLabel {
		if pct, ok := e.cfg.TrailPctByLabel[label]; ok {
			return pct, true
		}
	}
	if e.cfg.TrailPct > 0 {
		return e.cfg.TrailPct, true
	}
	return 0, false
}

// checkExit evaluates the triggers in fixed priority. When several
// fire on the same bar the worst case for the trader wins: stop, then
// target, then the macro filter, then the technical exit. Risk exits
// fill at their trigger price, the others at the close.
func (e *Engine) checkExit(p *Position, bar market.Bar, s indicators.Snapshot, label cycle.Label, hasLabel bool) (float64, ExitReason, bool) {
	if bar.Low <= p.Stop {
		return p.Stop, ExitStopLoss, true
	}
	if p.Target > 0 && bar.High >= p.Target {
		return p.Target, ExitProfitTarget, true
	}
	if e.permitted != nil && !(hasLabel && e.permitted[label]) {
		return bar.Close, ExitEconomic, true
	}
	if e.cfg.Exit.signal(s, e.cfg.OscillatorExit) {
		return bar.Close, ExitTechnical, true
	}
	return 0, "", false
}

func closedTrade(p *Position, t time.Time, px float64, reason ExitReason, label cycle.Label, hasLabel bool) Trade {
	exitLabel := cycle.None
	if hasLabel {
		exitLabel = label
	}
	return Trade{
		EntryTime:  p.EntryTime,
		ExitTime:   t,
		EntryPrice: p.EntryPrice,
		ExitPrice:  px,
		Shares:     p.Shares,
		Return:     px/p.EntryPrice - 1,
		Reason:     reason,
		EntryLabel: p.EntryLabel,
		ExitLabel:  exitLabel,
	}
}

func labelFor(tl *cycle.Timeline, t time.Time) (cycle.Label, bool) {
	if tl == nil {
		return cycle.None, false
	}
	return tl.LabelAt(t)
}

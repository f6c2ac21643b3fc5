package backtest

import (
	"fmt"

	"github.com/mwhitlock/cycletrader/indicators"
	"github.com/mwhitlock/cycletrader/market"
)

// BuyAndHold produces the benchmark run: fully invested at the first
// bar's close and held to the end. The single position stays open, so
// the result has no trades and its win rate is undefined.
func BuyAndHold(bars []market.Bar, capital float64) (*Result, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: buy and hold needs at least one bar", indicators.ErrInsufficientData)
	}
	if capital <= 0 {
		return nil, fmt.Errorf("%w: initial capital must be positive, got %v", ErrInvalidConfig, capital)
	}
	if err := market.ValidateBars(bars); err != nil {
		return nil, err
	}

	shares := capital / bars[0].Close
	res := &Result{
		Equity:         make([]EquityPoint, 0, len(bars)),
		InitialCapital: capital,
		Open: &Position{
			EntryTime:  bars[0].Time,
			EntryPrice: bars[0].Close,
			Shares:     shares,
		},
	}
	for _, bar := range bars {
		res.Equity = append(res.Equity, EquityPoint{Time: bar.Time, Value: shares * bar.Close})
	}
	res.FinalEquity = res.Equity[len(res.Equity)-1].Value
	return res, nil
}

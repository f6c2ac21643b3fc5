// Package perf derives summary statistics from a backtest result.
//
// Every ratio is a fraction, not a percent. A statistic that has no
// defined value (win rate with zero trades, risk-adjusted return with
// zero volatility) is NaN rather than zero: downstream formatting must
// distinguish "undefined" from "0".
package perf

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mwhitlock/cycletrader/backtest"
	"github.com/mwhitlock/cycletrader/market"
)

// Metrics summarizes one run.
type Metrics struct {
	TotalReturn      float64
	AnnualizedReturn float64
	Volatility       float64
	SharpeRatio      float64
	MaxDrawdown      float64 // most negative peak-to-trough fraction, <= 0

	Trades        int
	Wins          int
	Losses        int
	WinRate       float64
	AvgReturn     float64
	AvgWin        float64
	AvgLoss       float64
	BestTrade     float64
	WorstTrade    float64
	ProfitFactor  float64
	StopLossExits int

	FinalEquity float64
}

// Compute derives Metrics from a result at the given bar cadence.
// riskFree is the annual risk-free rate as a fraction.
func Compute(res *backtest.Result, freq market.Frequency, riskFree float64) Metrics {
	nan := math.NaN()
	m := Metrics{
		TotalReturn:      nan,
		AnnualizedReturn: nan,
		Volatility:       nan,
		SharpeRatio:      nan,
		WinRate:          nan,
		AvgReturn:        nan,
		AvgWin:           nan,
		AvgLoss:          nan,
		BestTrade:        nan,
		WorstTrade:       nan,
		ProfitFactor:     nan,
		FinalEquity:      res.FinalEquity,
	}
	if len(res.Equity) == 0 || res.InitialCapital <= 0 {
		return m
	}

	m.TotalReturn = res.FinalEquity/res.InitialCapital - 1

	ppy := freq.PeriodsPerYear()
	if periods := len(res.Equity) - 1; periods >= 1 {
		m.AnnualizedReturn = math.Pow(1+m.TotalReturn, ppy/float64(periods)) - 1

		returns := make([]float64, periods)
		for i := 0; i < periods; i++ {
			returns[i] = res.Equity[i+1].Value/res.Equity[i].Value - 1
		}
		m.Volatility = stat.StdDev(returns, nil) * math.Sqrt(ppy)
	}
	if m.Volatility != 0 && !math.IsNaN(m.Volatility) {
		m.SharpeRatio = (m.AnnualizedReturn - riskFree) / m.Volatility
	}

	m.MaxDrawdown = maxDrawdown(res.Equity)
	m.fillTradeStats(res.Trades)
	return m
}

// maxDrawdown walks the curve once tracking the running peak. A
// non-decreasing curve reports exactly 0.
func maxDrawdown(eq []backtest.EquityPoint) float64 {
	var dd float64
	peak := eq[0].Value
	for _, p := range eq {
		if p.Value > peak {
			peak = p.Value
		}
		if peak > 0 {
			if d := p.Value/peak - 1; d < dd {
				dd = d
			}
		}
	}
	return dd
}

func (m *Metrics) fillTradeStats(trades []backtest.Trade) {
	m.Trades = len(trades)
	if len(trades) == 0 {
		return
	}

	returns := make([]float64, len(trades))
	var grossWin, grossLoss float64
	for i, tr := range trades {
		returns[i] = tr.Return
		switch {
		case tr.Return > 0:
			m.Wins++
			grossWin += tr.Return
		case tr.Return < 0:
			m.Losses++
			grossLoss -= tr.Return
		}
		if math.IsNaN(m.BestTrade) || tr.Return > m.BestTrade {
			m.BestTrade = tr.Return
		}
		if math.IsNaN(m.WorstTrade) || tr.Return < m.WorstTrade {
			m.WorstTrade = tr.Return
		}
		if tr.Reason == backtest.ExitStopLoss {
			m.StopLossExits++
		}
	}

	m.WinRate = float64(m.Wins) / float64(m.Trades)
	m.AvgReturn = stat.Mean(returns, nil)
	if m.Wins > 0 {
		m.AvgWin = grossWin / float64(m.Wins)
	}
	if m.Losses > 0 {
		m.AvgLoss = -grossLoss / float64(m.Losses)
	}
	if grossLoss > 0 {
		m.ProfitFactor = grossWin / grossLoss
	} else if grossWin > 0 {
		m.ProfitFactor = math.Inf(1)
	}
}

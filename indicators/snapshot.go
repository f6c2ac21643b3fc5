package indicators

import (
	"math"
	"sync"
	"time"

	"github.com/mwhitlock/cycletrader/market"
)

// Snapshot is the derived indicator state for one bar. Columns of
// families that are not configured, and bars inside a family's
// warm-up, hold NaN.
type Snapshot struct {
	Time  time.Time
	Close float64

	MA        float64
	UpperBand float64
	LowerBand float64

	RSI float64
	ATR float64

	KCMid   float64
	KCUpper float64
	KCLower float64

	MACD       float64
	MACDSignal float64
	MACDHist   float64

	// Squeeze is set when the bands sit fully inside the channel.
	Squeeze bool
}

// Compute builds the per-bar snapshot table for every family cfg
// enables. Families are independent pure functions of the same
// read-only input, so they run concurrently; the table is only
// assembled after all of them finish. Recomputing over the same input
// yields an identical table.
func Compute(bars []market.Bar, cfg Config) ([]Snapshot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(bars)
	closes := market.Closes(bars)

	bands := Bands{Upper: nanSlice(n), Middle: nanSlice(n), Lower: nanSlice(n)}
	channel := Channel{Upper: nanSlice(n), Middle: nanSlice(n), Lower: nanSlice(n)}
	macd := MACDLines{Line: nanSlice(n), Signal: nanSlice(n), Hist: nanSlice(n)}
	rsi := nanSlice(n)
	atr := nanSlice(n)

	var wg sync.WaitGroup
	errs := make([]error, 5)

	if cfg.HasBands() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bands, errs[0] = Bollinger(closes, cfg.MAPeriod, cfg.BandWidth)
		}()
	}
	if cfg.HasRSI() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rsi, errs[1] = RSI(closes, cfg.RSIPeriod)
		}()
	}
	if cfg.ATRPeriod > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			atr, errs[2] = ATR(bars, cfg.ATRPeriod)
		}()
	}
	if cfg.HasChannel() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			channel, errs[3] = Keltner(bars, cfg.ChannelPeriod, cfg.ChannelMult)
		}()
	}
	if cfg.HasMACD() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			macd, errs[4] = MACD(closes, cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	snaps := make([]Snapshot, n)
	for i := range bars {
		s := Snapshot{
			Time:       bars[i].Time,
			Close:      bars[i].Close,
			MA:         bands.Middle[i],
			UpperBand:  bands.Upper[i],
			LowerBand:  bands.Lower[i],
			RSI:        rsi[i],
			ATR:        atr[i],
			KCMid:      channel.Middle[i],
			KCUpper:    channel.Upper[i],
			KCLower:    channel.Lower[i],
			MACD:       macd.Line[i],
			MACDSignal: macd.Signal[i],
			MACDHist:   macd.Hist[i],
		}
		if !math.IsNaN(s.LowerBand) && !math.IsNaN(s.KCLower) {
			s.Squeeze = s.LowerBand > s.KCLower && s.UpperBand < s.KCUpper
		}
		snaps[i] = s
	}
	return snaps, nil
}

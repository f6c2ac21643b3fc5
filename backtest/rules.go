package backtest

import (
	"fmt"
	"strings"

	"github.com/mwhitlock/cycletrader/indicators"
)

// EntryRule selects the condition that opens a position. Rules are a
// closed set of tagged variants so every rule/indicator combination
// can be validated and tested exhaustively.
type EntryRule int

const (
	// EntryBandOscillator: close under the lower band with the
	// oscillator under the entry threshold.
	EntryBandOscillator EntryRule = iota
	// EntryChannelOscillator: close under the lower channel with the
	// oscillator under the entry threshold.
	EntryChannelOscillator
	// EntrySqueeze: band/channel squeeze in effect plus the band
	// oscillator condition.
	EntrySqueeze
	// EntryCycle: no technical condition; the macro filter alone
	// gates entries.
	EntryCycle
)

func (r EntryRule) String() string {
	switch r {
	case EntryBandOscillator:
		return "band-oscillator"
	case EntryChannelOscillator:
		return "channel-oscillator"
	case EntrySqueeze:
		return "squeeze"
	case EntryCycle:
		return "cycle"
	}
	return fmt.Sprintf("entry(%d)", int(r))
}

// ParseEntryRule maps a config string to an EntryRule.
func ParseEntryRule(s string) (EntryRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "band-oscillator", "":
		return EntryBandOscillator, nil
	case "channel-oscillator":
		return EntryChannelOscillator, nil
	case "squeeze":
		return EntrySqueeze, nil
	case "cycle":
		return EntryCycle, nil
	}
	return EntryBandOscillator, fmt.Errorf("unknown entry rule %q", s)
}

// signal evaluates the rule on one snapshot. NaN indicator values
// compare false, so warm-up bars never signal.
func (r EntryRule) signal(s indicators.Snapshot, oscEntry float64) bool {
	switch r {
	case EntryBandOscillator:
		return s.Close < s.LowerBand && s.RSI < oscEntry
	case EntryChannelOscillator:
		return s.Close < s.KCLower && s.RSI < oscEntry
	case EntrySqueeze:
		return s.Squeeze && s.Close < s.LowerBand && s.RSI < oscEntry
	case EntryCycle:
		return true
	}
	return false
}

// requires reports the indicator families the rule reads.
func (r EntryRule) requires() (bands, channel, rsi bool) {
	switch r {
	case EntryBandOscillator:
		return true, false, true
	case EntryChannelOscillator:
		return false, true, true
	case EntrySqueeze:
		return true, true, true
	}
	return false, false, false
}

// ExitRule selects the signal-driven exit. Risk exits (stop, target)
// and the macro filter are configured separately and always run first.
type ExitRule int

const (
	// ExitMiddleBand: close back above the moving average.
	ExitMiddleBand ExitRule = iota
	// ExitUpperBand: close above the upper band.
	ExitUpperBand
	// ExitUpperChannel: close above the upper channel.
	ExitUpperChannel
	// ExitOscillator: oscillator above the exit threshold.
	ExitOscillator
	// ExitNone: no technical exit; stop, target and filter only.
	ExitNone
)

func (r ExitRule) String() string {
	switch r {
	case ExitMiddleBand:
		return "middle-band"
	case ExitUpperBand:
		return "upper-band"
	case ExitUpperChannel:
		return "upper-channel"
	case ExitOscillator:
		return "oscillator"
	case ExitNone:
		return "none"
	}
	return fmt.Sprintf("exit(%d)", int(r))
}

// ParseExitRule maps a config string to an ExitRule.
func ParseExitRule(s string) (ExitRule, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "middle-band", "":
		return ExitMiddleBand, nil
	case "upper-band":
		return ExitUpperBand, nil
	case "upper-channel":
		return ExitUpperChannel, nil
	case "oscillator":
		return ExitOscillator, nil
	case "none":
		return ExitNone, nil
	}
	return ExitMiddleBand, fmt.Errorf("unknown exit rule %q", s)
}

func (r ExitRule) signal(s indicators.Snapshot, oscExit float64) bool {
	switch r {
	case ExitMiddleBand:
		return s.Close > s.MA
	case ExitUpperBand:
		return s.Close > s.UpperBand
	case ExitUpperChannel:
		return s.Close > s.KCUpper
	case ExitOscillator:
		return s.RSI > oscExit
	}
	return false
}

func (r ExitRule) requires() (bands, channel, rsi bool) {
	switch r {
	case ExitMiddleBand, ExitUpperBand:
		return true, false, false
	case ExitUpperChannel:
		return false, true, false
	case ExitOscillator:
		return false, false, true
	}
	return false, false, false
}

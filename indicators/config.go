package indicators

import "fmt"

// Config selects which indicator families Compute produces and their
// parameters. A zero period means that family is not computed and its
// snapshot columns stay NaN.
type Config struct {
	// Bollinger bands.
	MAPeriod  int     `yaml:"ma_period" json:"ma_period"`
	BandWidth float64 `yaml:"band_width" json:"band_width"`

	RSIPeriod int `yaml:"rsi_period" json:"rsi_period"`
	ATRPeriod int `yaml:"atr_period" json:"atr_period"`

	// Keltner channel.
	ChannelPeriod int     `yaml:"channel_period" json:"channel_period"`
	ChannelMult   float64 `yaml:"channel_mult" json:"channel_mult"`

	MACDFast   int `yaml:"macd_fast" json:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow" json:"macd_slow"`
	MACDSignal int `yaml:"macd_signal" json:"macd_signal"`
}

// DefaultConfig returns the standard parameter set: 20/2.0 bands,
// RSI 14, ATR 14, 20/2.0 channel, 12/26/9 MACD.
func DefaultConfig() Config {
	return Config{
		MAPeriod:      20,
		BandWidth:     2.0,
		RSIPeriod:     14,
		ATRPeriod:     14,
		ChannelPeriod: 20,
		ChannelMult:   2.0,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
	}
}

// Validate checks the parameters of every configured family.
func (c Config) Validate() error {
	if c.MAPeriod != 0 {
		if c.MAPeriod < 2 {
			return fmt.Errorf("%w: band period must be at least 2, got %d", ErrInvalidParameter, c.MAPeriod)
		}
		if c.BandWidth <= 0 {
			return fmt.Errorf("%w: band width must be positive, got %v", ErrInvalidParameter, c.BandWidth)
		}
	}
	if c.RSIPeriod < 0 {
		return fmt.Errorf("%w: rsi period must not be negative, got %d", ErrInvalidParameter, c.RSIPeriod)
	}
	if c.ATRPeriod < 0 {
		return fmt.Errorf("%w: atr period must not be negative, got %d", ErrInvalidParameter, c.ATRPeriod)
	}
	if c.ChannelPeriod < 0 {
		return fmt.Errorf("%w: channel period must not be negative, got %d", ErrInvalidParameter, c.ChannelPeriod)
	}
	if c.ChannelPeriod > 0 && c.ChannelMult <= 0 {
		return fmt.Errorf("%w: channel multiplier must be positive, got %v", ErrInvalidParameter, c.ChannelMult)
	}
	macd := c.MACDFast != 0 || c.MACDSlow != 0 || c.MACDSignal != 0
	if macd {
		if c.MACDFast <= 0 || c.MACDSlow <= 0 || c.MACDSignal <= 0 {
			return fmt.Errorf("%w: macd periods must all be set, got %d/%d/%d",
				ErrInvalidParameter, c.MACDFast, c.MACDSlow, c.MACDSignal)
		}
		if c.MACDFast >= c.MACDSlow {
			return fmt.Errorf("%w: macd fast period %d must be shorter than slow %d",
				ErrInvalidParameter, c.MACDFast, c.MACDSlow)
		}
	}
	return nil
}

// HasBands reports whether Bollinger bands are configured.
func (c Config) HasBands() bool { return c.MAPeriod > 0 }

// HasRSI reports whether the RSI oscillator is configured.
func (c Config) HasRSI() bool { return c.RSIPeriod > 0 }

// HasChannel reports whether the Keltner channel is configured.
func (c Config) HasChannel() bool { return c.ChannelPeriod > 0 }

// HasMACD reports whether the MACD family is configured.
func (c Config) HasMACD() bool { return c.MACDSlow > 0 }

// Warmup returns the minimum series length that yields at least one
// fully defined value for every configured family.
func (c Config) Warmup() int {
	w := 0
	if c.HasBands() && c.MAPeriod > w {
		w = c.MAPeriod
	}
	if c.HasRSI() && c.RSIPeriod+1 > w {
		w = c.RSIPeriod + 1
	}
	if c.ATRPeriod > 0 && c.ATRPeriod+1 > w {
		w = c.ATRPeriod + 1
	}
	if c.HasChannel() && c.ChannelPeriod+1 > w {
		w = c.ChannelPeriod + 1
	}
	if c.HasMACD() && c.MACDSlow+c.MACDSignal-1 > w {
		w = c.MACDSlow + c.MACDSignal - 1
	}
	return w
}

package indicators

import "github.com/rustyeddy/intraday/market"

// Config selects the indicator parameters attached by Enrich.
type Config struct {
	RSIPeriod  int
	BBPeriod   int
	BBStdDev   float64
	MACDFast   int
	MACDSlow   int
	MACDSignal int
}

func DefaultConfig() Config {
	return Config{
		RSIPeriod:  14,
		BBPeriod:   20,
		BBStdDev:   2.0,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
	}
}

// Enrich attaches rsi, bb_* and macd columns to the bar sequence and
// drops the warmup prefix where any indicator is not yet defined. Input
// bars are not modified; the state is carried forward incrementally, one
// pass over the data.
func Enrich(bars []market.Bar, cfg Config) []market.Bar {
	rsi := NewRSI(cfg.RSIPeriod)
	bb := NewBollinger(cfg.BBPeriod, cfg.BBStdDev)
	macd := NewMACD(cfg.MACDFast, cfg.MACDSlow, cfg.MACDSignal)

	out := make([]market.Bar, 0, len(bars))
	for _, b := range bars {
		rsi.Update(b.Close)
		bb.Update(b.Close)
		macd.Update(b.Close)

		if !rsi.Ready() || !bb.Ready() || !macd.Ready() {
			continue
		}

		cols := map[string]float64{
			market.ColRSI:        rsi.Value(),
			market.ColBBMiddle:   bb.Middle(),
			market.ColBBUpper:    bb.Upper(),
			market.ColBBLower:    bb.Lower(),
			market.ColMACD:       macd.Line(),
			market.ColMACDSignal: macd.Signal(),
		}
		b.Columns = cols
		out = append(out, b)
	}
	return out
}

package strategies

import "github.com/rustyeddy/intraday/market"

// RSIBollinger signals on the confluence of RSI extremes and Bollinger
// band breaks: oversold below the lower band buys, overbought above the
// upper band sells, anything else holds.
type RSIBollinger struct {
	Oversold   float64
	Overbought float64
}

func (s RSIBollinger) Name() string { return "rsi-bb" }

func (s RSIBollinger) RequiredColumns() []string {
	return []string{market.ColRSI, market.ColBBUpper, market.ColBBLower}
}

func (s RSIBollinger) Evaluate(window []market.Bar) (Signal, error) {
	if len(window) == 0 {
		return Hold, nil
	}
	last := window[len(window)-1]

	rsi, ok := last.Column(market.ColRSI)
	if !ok {
		return Hold, &market.MissingColumnError{Column: market.ColRSI}
	}
	upper, ok := last.Column(market.ColBBUpper)
	if !ok {
		return Hold, &market.MissingColumnError{Column: market.ColBBUpper}
	}
	lower, ok := last.Column(market.ColBBLower)
	if !ok {
		return Hold, &market.MissingColumnError{Column: market.ColBBLower}
	}

	switch {
	case rsi < s.Oversold && last.Close < lower:
		return Buy, nil
	case rsi > s.Overbought && last.Close > upper:
		return Sell, nil
	default:
		return Hold, nil
	}
}

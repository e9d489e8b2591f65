package market

import (
	"fmt"
	"time"
)

// Column names attached by the indicators package and consumed by
// strategies. A strategy declares which of these it needs and the
// orchestrators validate them up front.
const (
	ColRSI        = "rsi"
	ColBBUpper    = "bb_upper"
	ColBBMiddle   = "bb_middle"
	ColBBLower    = "bb_lower"
	ColMACD       = "macd"
	ColMACDSignal = "macd_signal"
)

// Bar is one OHLCV sample for a fixed interval, plus any indicator
// columns attached after the fact. Bars are treated as immutable once
// produced; WithColumn returns a copy.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64

	Columns map[string]float64
}

// Column returns the named indicator value, if present.
func (b Bar) Column(name string) (float64, bool) {
	v, ok := b.Columns[name]
	return v, ok
}

// WithColumn returns a copy of the bar with the column attached.
func (b Bar) WithColumn(name string, v float64) Bar {
	cols := make(map[string]float64, len(b.Columns)+1)
	for k, val := range b.Columns {
		cols[k] = val
	}
	cols[name] = v
	b.Columns = cols
	return b
}

// MissingColumnError reports a data-contract violation: a required
// indicator column is absent from the bar stream.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// RequireColumns verifies that every named column is present on the last
// bar of the series. Signal decisions are made on the last row only, so
// checking it is sufficient once the warmup prefix has been trimmed.
func RequireColumns(bars []Bar, cols ...string) error {
	if len(bars) == 0 {
		return nil
	}
	last := bars[len(bars)-1]
	for _, c := range cols {
		if _, ok := last.Column(c); !ok {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

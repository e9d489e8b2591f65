package strategies

import (
	"errors"
	"testing"

	"github.com/rustyeddy/intraday/market"
)

func enrichedBar(close, rsi, lower, upper float64) market.Bar {
	return market.Bar{
		Close: close,
		Columns: map[string]float64{
			market.ColRSI:     rsi,
			market.ColBBLower: lower,
			market.ColBBUpper: upper,
		},
	}
}

func TestRSIBollingerSignals(t *testing.T) {
	s := RSIBollinger{Oversold: 30, Overbought: 70}

	cases := []struct {
		name string
		bar  market.Bar
		want Signal
	}{
		{"buy on confluence", enrichedBar(98, 25, 99, 105), Buy},
		{"sell on confluence", enrichedBar(106, 75, 99, 105), Sell},
		{"oversold inside bands holds", enrichedBar(100, 25, 99, 105), Hold},
		{"below band with neutral rsi holds", enrichedBar(98, 50, 99, 105), Hold},
		{"overbought inside bands holds", enrichedBar(104, 75, 99, 105), Hold},
		{"exactly at thresholds holds", enrichedBar(99, 30, 99, 105), Hold},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Evaluate([]market.Bar{tc.bar})
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if got != tc.want {
				t.Fatalf("signal = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestRSIBollingerMissingColumn(t *testing.T) {
	s := RSIBollinger{Oversold: 30, Overbought: 70}
	bar := market.Bar{Close: 100, Columns: map[string]float64{market.ColRSI: 25}}

	_, err := s.Evaluate([]market.Bar{bar})
	var missing *market.MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want MissingColumnError", err)
	}
}

func TestRSIBollingerEmptyWindow(t *testing.T) {
	s := RSIBollinger{Oversold: 30, Overbought: 70}
	sig, err := s.Evaluate(nil)
	if err != nil || sig != Hold {
		t.Fatalf("sig = %s err = %v", sig, err)
	}
}

func TestByName(t *testing.T) {
	p := DefaultParams()

	s, err := ByName("rsi-bb", p)
	if err != nil || s.Name() != "rsi-bb" {
		t.Fatalf("s = %v err = %v", s, err)
	}

	if _, err := ByName("NOOP", p); err != nil {
		t.Fatalf("noop: %v", err)
	}

	if _, err := ByName("momentum", p); err == nil {
		t.Fatal("expected error for unknown strategy")
	}
}

func TestNoopAlwaysHolds(t *testing.T) {
	sig, err := Noop{}.Evaluate([]market.Bar{{Close: 100}})
	if err != nil || sig != Hold {
		t.Fatalf("sig = %s err = %v", sig, err)
	}
	if cols := (Noop{}).RequiredColumns(); len(cols) != 0 {
		t.Fatalf("noop requires %v", cols)
	}
}

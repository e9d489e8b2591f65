package indicators

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/intraday/market"
)

func TestRSIBounds(t *testing.T) {
	t.Parallel()

	r := NewRSI(14)
	closes := []float64{
		100, 101, 99, 102, 103, 101, 104, 105, 103, 106,
		107, 105, 108, 109, 107, 110, 111, 109, 112, 113,
	}
	for _, c := range closes {
		r.Update(c)
		if r.Ready() {
			v := r.Value()
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
	}
	assert.True(t, r.Ready())
}

func TestRSIAllGainsIsHundred(t *testing.T) {
	t.Parallel()

	r := NewRSI(5)
	for c := 100.0; c < 110; c++ {
		r.Update(c)
	}
	require.True(t, r.Ready())
	assert.InDelta(t, 100, r.Value(), 1e-9)
}

func TestRSINotReadyDuringWarmup(t *testing.T) {
	t.Parallel()

	r := NewRSI(14)
	for i := 0; i < 14; i++ {
		r.Update(100 + float64(i))
		assert.False(t, r.Ready(), "ready after %d updates", i+1)
	}
	r.Update(120)
	assert.True(t, r.Ready())
}

func TestBollingerConstantSeries(t *testing.T) {
	t.Parallel()

	b := NewBollinger(20, 2)
	for i := 0; i < 25; i++ {
		b.Update(100)
	}
	require.True(t, b.Ready())
	assert.InDelta(t, 100, b.Middle(), 1e-9)
	assert.InDelta(t, 100, b.Upper(), 1e-9)
	assert.InDelta(t, 100, b.Lower(), 1e-9)
}

func TestBollingerKnownWindow(t *testing.T) {
	t.Parallel()

	b := NewBollinger(4, 2)
	for _, c := range []float64{1, 2, 3, 4} {
		b.Update(c)
	}
	require.True(t, b.Ready())

	assert.InDelta(t, 2.5, b.Middle(), 1e-9)
	// Sample standard deviation of {1,2,3,4}.
	sigma := math.Sqrt((2.25 + 0.25 + 0.25 + 2.25) / 3)
	assert.InDelta(t, 2.5+2*sigma, b.Upper(), 1e-9)
	assert.InDelta(t, 2.5-2*sigma, b.Lower(), 1e-9)
}

func TestBollingerRollsWindow(t *testing.T) {
	t.Parallel()

	b := NewBollinger(3, 2)
	for _, c := range []float64{1, 2, 3, 10, 10, 10} {
		b.Update(c)
	}
	// Only the last three closes contribute.
	assert.InDelta(t, 10, b.Middle(), 1e-9)
}

func TestMACDConvergesOnConstantSeries(t *testing.T) {
	t.Parallel()

	m := NewMACD(12, 26, 9)
	for i := 0; i < 100; i++ {
		m.Update(100)
	}
	require.True(t, m.Ready())
	assert.InDelta(t, 0, m.Line(), 1e-9)
	assert.InDelta(t, 0, m.Signal(), 1e-9)
}

func TestMACDPositiveOnUptrend(t *testing.T) {
	t.Parallel()

	m := NewMACD(12, 26, 9)
	for i := 0; i < 100; i++ {
		m.Update(100 + float64(i))
	}
	assert.Greater(t, m.Line(), 0.0)
}

func TestEnrichDropsWarmupAndAttachesColumns(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 6, 3, 9, 15, 0, 0, time.UTC)
	bars := make([]market.Bar, 60)
	for i := range bars {
		c := 100 + math.Sin(float64(i)/3)*5
		bars[i] = market.Bar{Time: base.Add(time.Duration(i) * time.Minute), Close: c}
	}

	cfg := DefaultConfig()
	out := Enrich(bars, cfg)

	// MACD has the longest warmup: slow + signal.
	require.Len(t, out, len(bars)-(cfg.MACDSlow+cfg.MACDSignal-1))

	for _, b := range out {
		for _, col := range []string{
			market.ColRSI, market.ColBBUpper, market.ColBBMiddle,
			market.ColBBLower, market.ColMACD, market.ColMACDSignal,
		} {
			if _, ok := b.Column(col); !ok {
				t.Fatalf("bar %s missing %s", b.Time, col)
			}
		}
		upper, _ := b.Column(market.ColBBUpper)
		lower, _ := b.Column(market.ColBBLower)
		assert.GreaterOrEqual(t, upper, lower)
	}

	// Input must be untouched.
	assert.Nil(t, bars[len(bars)-1].Columns)
}

func TestEnrichShortSeries(t *testing.T) {
	t.Parallel()

	out := Enrich([]market.Bar{{Close: 100}, {Close: 101}}, DefaultConfig())
	assert.Empty(t, out)
}

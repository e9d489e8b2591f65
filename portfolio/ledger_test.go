package portfolio

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/intraday/journal"
)

func ts(min int) time.Time {
	return time.Date(2024, 6, 3, 9, min, 0, 0, time.UTC)
}

func TestOpenCloseRoundTrip(t *testing.T) {
	t.Parallel()

	l := NewLedger(100_000, nil)

	pos, err := l.Open(OpenRequest{
		Symbol:        "RELIANCE",
		Price:         100,
		Quantity:      1000,
		StopLossPct:   2,
		TakeProfitPct: 5,
		Time:          ts(0),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, l.OpenCount())
	assert.InDelta(t, 0, l.Cash(), 1e-9)
	assert.InDelta(t, 98, pos.StopLoss, 1e-9)
	assert.InDelta(t, 105, pos.TakeProfit, 1e-9)

	trade, err := l.Close("RELIANCE", 110, ts(30), ExitStrategySell)
	require.NoError(t, err)

	assert.Equal(t, 0, l.OpenCount())
	assert.InDelta(t, 110_000, l.Cash(), 1e-9)
	assert.InDelta(t, 10_000, trade.PnL, 1e-9)
	assert.Equal(t, ExitStrategySell, trade.Reason)
}

func TestOpenRejectsSecondPosition(t *testing.T) {
	t.Parallel()

	l := NewLedger(100_000, nil)
	_, err := l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 10, Time: ts(0)})
	require.NoError(t, err)

	_, err = l.Open(OpenRequest{Symbol: "TCS", Price: 101, Quantity: 10, Time: ts(1)})
	assert.ErrorIs(t, err, ErrAlreadyOpen)

	// Other symbols are unaffected.
	_, err = l.Open(OpenRequest{Symbol: "INFY", Price: 50, Quantity: 10, Time: ts(1)})
	assert.NoError(t, err)
}

func TestOpenRejectsBadQuantity(t *testing.T) {
	t.Parallel()

	l := NewLedger(1000, nil)

	_, err := l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 0, Time: ts(0)})
	assert.ErrorIs(t, err, ErrBadQuantity)

	_, err = l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: -5, Time: ts(0)})
	assert.ErrorIs(t, err, ErrBadQuantity)

	// Cost above available cash.
	_, err = l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 11, Time: ts(0)})
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestCloseWithoutPosition(t *testing.T) {
	t.Parallel()

	l := NewLedger(1000, nil)
	_, err := l.Close("TCS", 100, ts(0), ExitStrategySell)
	assert.ErrorIs(t, err, ErrNotOpen)
}

func TestThresholdsDisabled(t *testing.T) {
	t.Parallel()

	stop, take := Thresholds(100, 0, 0)
	assert.Equal(t, 0.0, stop)
	assert.True(t, math.IsInf(take, 1))

	stop, take = Thresholds(200, 2, 5)
	assert.InDelta(t, 196, stop, 1e-9)
	assert.InDelta(t, 210, take, 1e-9)
}

func TestSizing(t *testing.T) {
	t.Parallel()

	// Full allocation keeps fractional shares.
	assert.InDelta(t, 333.3333333, FullAllocationQty(100_000, 300), 1e-6)
	assert.Equal(t, 0.0, FullAllocationQty(100_000, 0))

	// Fractional capital rounds down to whole shares.
	assert.Equal(t, 13.0, FractionalCapitalQty(100_000, 20, 1500))
	assert.Equal(t, 0.0, FractionalCapitalQty(1000, 20, 1500))
	assert.Equal(t, 0.0, FractionalCapitalQty(1000, 20, 0))
}

func TestEquityCurveOnePointPerMutation(t *testing.T) {
	t.Parallel()

	l := NewLedger(10_000, nil)
	l.Sample(ts(0), nil)

	_, err := l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 50, Time: ts(1)})
	require.NoError(t, err)
	_, err = l.Close("TCS", 102, ts(2), ExitTakeProfit)
	require.NoError(t, err)
	l.Sample(ts(3), nil)

	curve := l.Equity()
	require.Len(t, curve, 4)

	// Value is conserved through the open (positions held at entry).
	assert.InDelta(t, 10_000, curve[0].Value, 1e-9)
	assert.InDelta(t, 10_000, curve[1].Value, 1e-9)
	assert.InDelta(t, 10_100, curve[2].Value, 1e-9)
	assert.InDelta(t, 10_100, curve[3].Value, 1e-9)
}

func TestMarkToMarketFallsBackToEntry(t *testing.T) {
	t.Parallel()

	l := NewLedger(10_000, nil)
	_, err := l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 50, Time: ts(0)})
	require.NoError(t, err)

	// Fresh price moves the valuation.
	v := l.MarkToMarket(func(string) (float64, bool) { return 110, true })
	assert.InDelta(t, 10_500, v, 1e-9)

	// Missing price holds the position at entry.
	v = l.MarkToMarket(func(string) (float64, bool) { return 0, false })
	assert.InDelta(t, 10_000, v, 1e-9)
}

func TestRealizedPnLReconciles(t *testing.T) {
	t.Parallel()

	l := NewLedger(50_000, nil)

	prices := []struct {
		entry, exit float64
	}{
		{100, 104}, {104, 101}, {101, 108},
	}
	for i, p := range prices {
		_, err := l.Open(OpenRequest{Symbol: "TCS", Price: p.entry, Quantity: FullAllocationQty(l.Cash(), p.entry), Time: ts(i * 2)})
		require.NoError(t, err)
		_, err = l.Close("TCS", p.exit, ts(i*2+1), ExitStrategySell)
		require.NoError(t, err)
	}

	var sum float64
	for _, tr := range l.Trades() {
		sum += tr.PnL
	}
	assert.InDelta(t, l.Cash()-l.InitialCapital(), sum, 1e-6)
}

func TestPositionReturnsCopy(t *testing.T) {
	t.Parallel()

	l := NewLedger(10_000, nil)
	_, err := l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 10, Time: ts(0)})
	require.NoError(t, err)

	pos, ok := l.Position("TCS")
	require.True(t, ok)
	pos.Quantity = 999

	again, _ := l.Position("TCS")
	assert.Equal(t, 10.0, again.Quantity)
}

type failingJournal struct{ err error }

func (f failingJournal) RecordTrade(journal.TradeRecord) error  { return f.err }
func (f failingJournal) PublishSnapshot(journal.Snapshot) error { return f.err }
func (f failingJournal) Close() error                           { return nil }

func TestCloseSurvivesJournalFailure(t *testing.T) {
	t.Parallel()

	l := NewLedger(10_000, failingJournal{err: errors.New("disk full")})
	_, err := l.Open(OpenRequest{Symbol: "TCS", Price: 100, Quantity: 10, Time: ts(0)})
	require.NoError(t, err)

	_, err = l.Close("TCS", 105, ts(1), ExitStrategySell)
	require.Error(t, err)

	// The close itself stands: position gone, cash returned, trade logged.
	assert.Equal(t, 0, l.OpenCount())
	assert.InDelta(t, 10_050, l.Cash(), 1e-9)
	assert.Len(t, l.Trades(), 1)
}

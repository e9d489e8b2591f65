package journal

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrade() TradeRecord {
	return TradeRecord{
		Symbol:     "RELIANCE",
		EntryTime:  time.Date(2024, 6, 3, 9, 30, 0, 0, time.UTC),
		EntryPrice: 2900.5,
		ExitTime:   time.Date(2024, 6, 3, 11, 0, 0, 0, time.UTC),
		ExitPrice:  2950.25,
		Quantity:   6,
		PnL:        298.5,
		Reason:     "TAKE_PROFIT_HIT",
	}
}

func readAll(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestCSVWritesHeaderAndRow(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)

	require.NoError(t, j.RecordTrade(sampleTrade()))
	require.NoError(t, j.Close())

	rows := readAll(t, path)
	require.Len(t, rows, 2)
	assert.Equal(t, tradeHeader, rows[0])
	assert.Equal(t, "RELIANCE", rows[1][0])
	assert.Equal(t, "2024-06-03T09:30:00Z", rows[1][1])
	assert.Equal(t, "2950.250000", rows[1][4])
	assert.Equal(t, "TAKE_PROFIT_HIT", rows[1][7])
}

func TestCSVAppendsAcrossReopens(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")

	j, err := NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleTrade()))
	require.NoError(t, j.Close())

	// Reopen: no second header, rows keep appending.
	j, err = NewCSV(path)
	require.NoError(t, err)
	require.NoError(t, j.RecordTrade(sampleTrade()))
	require.NoError(t, j.Close())

	rows := readAll(t, path)
	require.Len(t, rows, 3)
	assert.Equal(t, tradeHeader, rows[0])
	assert.NotEqual(t, tradeHeader, rows[1])
}

func TestCSVIgnoresSnapshots(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "trades.csv")
	j, err := NewCSV(path)
	require.NoError(t, err)
	defer j.Close()

	assert.NoError(t, j.PublishSnapshot(Snapshot{PortfolioValue: 1}))
}

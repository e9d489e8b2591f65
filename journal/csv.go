package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal appends completed trades to a CSV file. Snapshots are not
// persisted by this sink; pair it with a SnapshotFile via Tee.
type CSVJournal struct {
	w *csv.Writer
	f *os.File
}

var tradeHeader = []string{
	"symbol", "entry_timestamp", "entry_price", "exit_timestamp",
	"exit_price", "quantity", "pnl", "exit_reason",
}

// NewCSV opens (or creates) the trade journal at path. The header is
// written only when the file is new, so restarts keep appending.
func NewCSV(path string) (*CSVJournal, error) {
	fi, err := os.Stat(path)
	fresh := err != nil || fi.Size() == 0

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(tradeHeader); err != nil {
			f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			f.Close()
			return nil, err
		}
	}

	return &CSVJournal{w: w, f: f}, nil
}

func (j *CSVJournal) RecordTrade(t TradeRecord) error {
	err := j.w.Write([]string{
		t.Symbol,
		t.EntryTime.Format(time.RFC3339),
		f(t.EntryPrice),
		t.ExitTime.Format(time.RFC3339),
		f(t.ExitPrice),
		f(t.Quantity),
		f(t.PnL),
		t.Reason,
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSVJournal) PublishSnapshot(Snapshot) error { return nil }

func (j *CSVJournal) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

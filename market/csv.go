package market

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadCSV reads bars from a CSV file with columns
// time,open,high,low,close,volume. A header row is detected and skipped.
// Rows must be in ascending time order; out-of-order rows are rejected.
func LoadCSV(path string) ([]Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV is LoadCSV for an already-open reader.
func ReadCSV(rd io.Reader) ([]Bar, error) {
	r := csv.NewReader(rd)
	r.FieldsPerRecord = -1

	var bars []Bar
	first := true
	for {
		row, err := r.Read()
		if err == io.EOF {
			return bars, nil
		}
		if err != nil {
			return nil, err
		}
		if len(row) == 0 {
			continue
		}
		if first {
			first = false
			if strings.EqualFold(strings.TrimSpace(row[0]), "time") {
				continue
			}
		}

		b, err := parseBarRow(row)
		if err != nil {
			return nil, err
		}
		if n := len(bars); n > 0 && !b.Time.After(bars[n-1].Time) {
			return nil, fmt.Errorf("bar at %s out of order", b.Time.Format(time.RFC3339))
		}
		bars = append(bars, b)
	}
}

func parseBarRow(row []string) (Bar, error) {
	if len(row) < 5 {
		return Bar{}, fmt.Errorf("bad row (need time,open,high,low,close[,volume]): %v", row)
	}

	ts := strings.TrimSpace(row[0])
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		t2, err2 := time.Parse(time.RFC3339Nano, ts)
		if err2 != nil {
			return Bar{}, fmt.Errorf("bad time %q: %w", row[0], err)
		}
		t = t2
	}

	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(row[i+1]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad value %q in column %d: %w", row[i+1], i+1, err)
		}
		vals[i] = v
	}

	vol := 0.0
	if len(row) > 5 && strings.TrimSpace(row[5]) != "" {
		vol, err = strconv.ParseFloat(strings.TrimSpace(row[5]), 64)
		if err != nil {
			return Bar{}, fmt.Errorf("bad volume %q: %w", row[5], err)
		}
	}

	return Bar{
		Time:   t,
		Open:   vals[0],
		High:   vals[1],
		Low:    vals[2],
		Close:  vals[3],
		Volume: vol,
	}, nil
}

package market

import (
	"strings"
	"testing"
	"time"
)

func TestReadCSVWithHeader(t *testing.T) {
	in := `time,open,high,low,close,volume
2024-06-03T09:15:00Z,100,101,99,100.5,1200
2024-06-03T09:16:00Z,100.5,102,100,101.5,900
`
	bars, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("got %d bars, want 2", len(bars))
	}
	if bars[0].Close != 100.5 || bars[0].Volume != 1200 {
		t.Fatalf("bar[0] = %+v", bars[0])
	}
	want := time.Date(2024, 6, 3, 9, 16, 0, 0, time.UTC)
	if !bars[1].Time.Equal(want) {
		t.Fatalf("bar[1].Time = %s", bars[1].Time)
	}
}

func TestReadCSVNoHeaderNoVolume(t *testing.T) {
	in := "2024-06-03T09:15:00Z,100,101,99,100.5\n"
	bars, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(bars) != 1 || bars[0].Volume != 0 {
		t.Fatalf("bars = %+v", bars)
	}
}

func TestReadCSVOutOfOrder(t *testing.T) {
	in := `2024-06-03T09:16:00Z,100,101,99,100.5
2024-06-03T09:15:00Z,100,101,99,100.5
`
	if _, err := ReadCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected out-of-order error")
	}
}

func TestReadCSVBadValue(t *testing.T) {
	in := "2024-06-03T09:15:00Z,100,abc,99,100.5\n"
	if _, err := ReadCSV(strings.NewReader(in)); err == nil {
		t.Fatal("expected parse error")
	}
}

package market

import (
	"errors"
	"testing"
)

func TestWithColumnCopies(t *testing.T) {
	a := Bar{Close: 100}
	b := a.WithColumn(ColRSI, 42)

	if _, ok := a.Column(ColRSI); ok {
		t.Fatal("original bar must not gain columns")
	}
	if v, ok := b.Column(ColRSI); !ok || v != 42 {
		t.Fatalf("copy missing column, got %v %v", v, ok)
	}

	c := b.WithColumn(ColRSI, 50)
	if v, _ := b.Column(ColRSI); v != 42 {
		t.Fatalf("second WithColumn mutated the first copy: %v", v)
	}
	if v, _ := c.Column(ColRSI); v != 50 {
		t.Fatalf("third copy = %v, want 50", v)
	}
}

func TestRequireColumns(t *testing.T) {
	bars := []Bar{
		{Close: 100},
		{Close: 101, Columns: map[string]float64{ColRSI: 55, ColBBUpper: 103}},
	}

	if err := RequireColumns(bars, ColRSI, ColBBUpper); err != nil {
		t.Fatalf("columns present on last bar: %v", err)
	}

	err := RequireColumns(bars, ColBBLower)
	var missing *MissingColumnError
	if !errors.As(err, &missing) || missing.Column != ColBBLower {
		t.Fatalf("err = %v", err)
	}

	if err := RequireColumns(nil, ColRSI); err != nil {
		t.Fatalf("empty series: %v", err)
	}
}

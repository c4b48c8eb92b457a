package text

import (
	"math"
	"testing"

	"github.com/matzehuels/mindmap/pkg/errors"
)

func TestMeterCachesByTextAndSize(t *testing.T) {
	calls := 0
	mt := NewMeter(MeasureFunc(func(s string, size float64) float64 {
		calls++
		return float64(len(s)) * size
	}))

	for range 3 {
		if w, err := mt.Width("abc", 10); err != nil || w != 30 {
			t.Fatalf("Width() = %v, %v, want 30, nil", w, err)
		}
	}
	if w, _ := mt.Width("abc", 12); w != 36 {
		t.Errorf("Width(abc, 12) = %v, want 36", w)
	}

	if calls != 2 {
		t.Errorf("measurer calls = %d, want 2", calls)
	}
	hits, misses := mt.Stats()
	if hits != 2 || misses != 2 {
		t.Errorf("Stats() = %d, %d, want 2, 2", hits, misses)
	}
	if mt.Len() != 2 {
		t.Errorf("Len() = %d, want 2", mt.Len())
	}
}

func TestMeterRejectsInvalidWidths(t *testing.T) {
	tests := []struct {
		name  string
		width float64
	}{
		{"nan", math.NaN()},
		{"positive infinity", math.Inf(1)},
		{"negative infinity", math.Inf(-1)},
		{"negative", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mt := NewMeter(MeasureFunc(func(string, float64) float64 { return tt.width }))
			_, err := mt.Width("x", 14)
			if !errors.IsMeasurement(err) {
				t.Fatalf("Width() error = %v, want MEASUREMENT_ERROR", err)
			}
			if mt.Len() != 0 {
				t.Errorf("invalid width was cached")
			}
		})
	}
}

func TestMeterAcceptsZero(t *testing.T) {
	mt := NewMeter(MeasureFunc(func(string, float64) float64 { return 0 }))
	if w, err := mt.Width("", 14); err != nil || w != 0 {
		t.Errorf("Width() = %v, %v, want 0, nil", w, err)
	}
}

func TestCellMeasurer(t *testing.T) {
	tests := []struct {
		name string
		m    CellMeasurer
		text string
		size float64
		want float64
	}{
		{"ascii unit ratio", CellMeasurer{Ratio: 1}, "ab", 10, 20},
		{"empty", CellMeasurer{}, "", 16, 0},
		{"default ratio", CellMeasurer{}, "abcd", 10, 4 * DefaultCellRatio * 10},
		{"wide runes", CellMeasurer{Ratio: 1}, "世界", 10, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.Measure(tt.text, tt.size)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Measure(%q, %v) = %v, want %v", tt.text, tt.size, got, tt.want)
			}
		})
	}
}

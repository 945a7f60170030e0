package parser

import (
	"math"
	"testing"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestWindowFromValues(t *testing.T) {
	tests := []struct {
		values   []float64
		expected models.AxisWindow
	}{
		{nil, models.AxisWindow{Min: 0, Max: 100}},
		{[]float64{72.3, 71.8}, models.AxisWindow{Min: 70.3, Max: 73.8}},
		{[]float64{70}, models.AxisWindow{Min: 68.5, Max: 71.5}},
		{[]float64{1, 0.5}, models.AxisWindow{Min: 0, Max: 2.5}},
		{[]float64{-4, 3}, models.AxisWindow{Min: 0, Max: 4.5}},
	}

	for _, tt := range tests {
		result := WindowFromValues(tt.values, DefaultPadding)
		if !approx(result.Min, tt.expected.Min) || !approx(result.Max, tt.expected.Max) {
			t.Errorf("WindowFromValues(%v) = %+v, expected %+v", tt.values, result, tt.expected)
		}
		if result.Min > result.Max {
			t.Errorf("WindowFromValues(%v) min > max", tt.values)
		}
	}
}

func TestAxisWindowForSpan_SkipsText(t *testing.T) {
	grid := models.Grid{
		{"Date", "Weight"},
		{"2025-01-01", "80"},
		{"2025-01-02", "n/a"},
		{"2025-01-03", ""},
		{"2025-01-04", "78"},
		{"2025-01-05", "10"},
	}
	span := models.DataSpan{FirstRow: 1, LastRow: 5, MetricCol: 1}

	w := AxisWindowForSpan(grid, span, DefaultPadding)
	if !approx(w.Min, 76.5) || !approx(w.Max, 81.5) {
		t.Errorf("window = %+v, expected (76.5, 81.5)", w)
	}

	empty := models.DataSpan{FirstRow: 2, LastRow: 4, MetricCol: 1}
	if w := AxisWindowForSpan(grid, empty, DefaultPadding); w != models.DefaultAxisWindow {
		t.Errorf("window = %+v, expected default", w)
	}
}

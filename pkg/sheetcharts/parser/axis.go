package parser

import (
	"math"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// DefaultPadding is added below the minimum and above the maximum value.
const DefaultPadding = 1.5

// WindowFromValues returns (max(0, min-padding), max+padding), or the
// default window for an empty set.
func WindowFromValues(values []float64, padding float64) models.AxisWindow {
	if len(values) == 0 {
		return models.DefaultAxisWindow
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	return models.AxisWindow{
		Min: math.Max(0, lo-padding),
		Max: hi + padding,
	}
}

// AxisWindowForSpan computes the window over the numeric metric cells of the
// span's rows. Empty and non-numeric cells are skipped.
func AxisWindowForSpan(grid models.Grid, span models.DataSpan, padding float64) models.AxisWindow {
	var values []float64
	start := span.FirstRow
	if start < 1 {
		start = 1
	}
	for rowIdx := start; rowIdx < span.LastRow && rowIdx < len(grid); rowIdx++ {
		if v, ok := ParseMetric(grid.Cell(rowIdx, span.MetricCol)); ok {
			values = append(values, v)
		}
	}
	return WindowFromValues(values, padding)
}

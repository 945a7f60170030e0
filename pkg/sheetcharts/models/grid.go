// Package models defines the data structures shared by the chart synthesis pipeline.
package models

import (
	"strings"
	"time"
)

// Grid is a rectangular snapshot of sheet values as ordered rows of text cells.
// Row 0 is the header. Rows may be shorter than the widest row.
type Grid [][]string

// Cell returns the trimmed value at (row, col), or "" when the position is
// outside the grid or past the end of a short row.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 {
		return ""
	}
	r := g[row]
	if col >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[col])
}

// DataRows returns the rows after the header.
func (g Grid) DataRows() [][]string {
	if len(g) <= 1 {
		return nil
	}
	return g[1:]
}

// Record is a validated data row.
type Record struct {
	// Row is the zero-based grid index of the row (the header is row 0).
	Row int `json:"row"`
	// Date is the parsed calendar date.
	Date time.Time `json:"date"`
	// Metric is the trimmed, non-empty metric text.
	Metric string `json:"metric"`
	// Value is the numeric metric, nil when Metric is not a number.
	Value *float64 `json:"value,omitempty"`
}

// SheetRow returns the one-based row number as shown by spreadsheet UIs.
func (r Record) SheetRow() int {
	return r.Row + 1
}

// DataSpan is the contiguous run of rows between the first and last valid row.
type DataSpan struct {
	// X is the date column range.
	X RowRange `json:"x"`
	// Y is the metric column range.
	Y RowRange `json:"y"`
	// FirstRow is the zero-based index of the first valid row.
	FirstRow int `json:"first_row"`
	// LastRow is one past the zero-based index of the last valid row.
	LastRow int `json:"last_row"`
	// MetricCol is the zero-based metric column.
	MetricCol int `json:"metric_col"`
}

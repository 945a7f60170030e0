package models

// RowRange is a zero-based, end-exclusive cell span on one sheet.
// The json tags follow the remote API's GridRange.
type RowRange struct {
	// SheetID identifies the sheet owning the range.
	SheetID int64 `json:"sheetId"`
	// StartRow is the first row (zero-based).
	StartRow int `json:"startRowIndex"`
	// EndRow is one past the last row.
	EndRow int `json:"endRowIndex"`
	// StartCol is the first column (zero-based).
	StartCol int `json:"startColumnIndex"`
	// EndCol is one past the last column.
	EndCol int `json:"endColumnIndex"`
}

// ColumnRange returns the single-column range [startRow, endRow) x [col, col+1).
func ColumnRange(sheetID int64, startRow, endRow, col int) RowRange {
	return RowRange{
		SheetID:  sheetID,
		StartRow: startRow,
		EndRow:   endRow,
		StartCol: col,
		EndCol:   col + 1,
	}
}

// OnSheet returns a copy of the range bound to sheetID.
func (r RowRange) OnSheet(sheetID int64) RowRange {
	r.SheetID = sheetID
	return r
}

// Rows returns the number of rows covered.
func (r RowRange) Rows() int {
	return r.EndRow - r.StartRow
}

// Valid reports whether both dimensions are non-empty.
func (r RowRange) Valid() bool {
	return r.EndRow > r.StartRow && r.EndCol > r.StartCol && r.StartRow >= 0 && r.StartCol >= 0
}

// AxisWindow is the padded value-axis window of a chart.
type AxisWindow struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultAxisWindow is used when a range has no numeric values.
var DefaultAxisWindow = AxisWindow{Min: 0, Max: 100}

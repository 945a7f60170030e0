// Package parser scans sheet grids into data spans, week buckets and axis windows,
// and reads grids and chart inventories from workbook files.
package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnIndex is a zero-based grid column.
type ColumnIndex int

// ParseColumn converts a column letter name ("A", "d", "AB") to its index.
func ParseColumn(name string) (ColumnIndex, error) {
	n, err := excelize.ColumnNameToNumber(strings.TrimSpace(name))
	if err != nil {
		return 0, fmt.Errorf("invalid column %q: %w", name, err)
	}
	return ColumnIndex(n - 1), nil
}

// Letter returns the column letter name, or "" for a negative index.
func (c ColumnIndex) Letter() string {
	name, err := excelize.ColumnNumberToName(int(c) + 1)
	if err != nil {
		return ""
	}
	return name
}

// Int returns the index as an int.
func (c ColumnIndex) Int() int {
	return int(c)
}

func (c ColumnIndex) String() string {
	return c.Letter()
}

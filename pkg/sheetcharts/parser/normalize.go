package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// shortDateLayout is the day-first layout some rows are typed in (06/01/25).
const shortDateLayout = "2/1/06"

// CellUpdate is a single rewritten cell.
type CellUpdate struct {
	// Row is the zero-based grid row.
	Row int
	// Col is the zero-based grid column.
	Col int
	Old string
	New string
}

// NormalizeDate rewrites dd/mm/yy and YYYY-MM-DD dates to YYYY-MM-DD.
// Anything else (month names, notes) is returned unchanged with ok false.
func NormalizeDate(s string) (string, bool) {
	v := strings.TrimSpace(s)
	layout := DateLayout
	if strings.Contains(v, "/") {
		layout = shortDateLayout
	}
	t, err := time.Parse(layout, v)
	if err != nil {
		return s, false
	}
	return t.Format(DateLayout), true
}

// NormalizeMetric rewrites decimal-comma numbers and formats them with one decimal.
func NormalizeMetric(s string) (string, bool) {
	v, ok := ParseMetric(strings.ReplaceAll(s, ",", "."))
	if !ok {
		return s, false
	}
	return strconv.FormatFloat(v, 'f', 1, 64), true
}

// NormalizeRows returns the date and metric cells of the data rows whose
// normalized text differs from the stored text.
func NormalizeRows(grid models.Grid, dateCol, metricCol ColumnIndex) []CellUpdate {
	var updates []CellUpdate
	for rowIdx := 1; rowIdx < len(grid); rowIdx++ {
		row := grid[rowIdx]
		if old := rawCell(row, dateCol.Int()); old != "" {
			if v, ok := NormalizeDate(old); ok && v != old {
				updates = append(updates, CellUpdate{Row: rowIdx, Col: dateCol.Int(), Old: old, New: v})
			}
		}
		if old := rawCell(row, metricCol.Int()); old != "" {
			if v, ok := NormalizeMetric(old); ok && v != old {
				updates = append(updates, CellUpdate{Row: rowIdx, Col: metricCol.Int(), Old: old, New: v})
			}
		}
	}
	return updates
}

func rawCell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

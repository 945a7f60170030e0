package parser

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// DateLayout is the only accepted date cell format.
const DateLayout = "2006-01-02"

// ErrNoData indicates a grid without any valid data row.
var ErrNoData = errors.New("no valid data rows")

// ErrSheetNotFound indicates a sheet missing from a workbook or spreadsheet.
var ErrSheetNotFound = errors.New("sheet not found")

// ParseDate parses a trimmed YYYY-MM-DD cell.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseMetric parses a trimmed numeric cell. NaN and infinities are rejected.
func ParseMetric(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// ScanRow classifies grid row rowIdx. A row is valid when its date cell parses
// and its metric cell is non-empty; the metric need not be numeric.
func ScanRow(row []string, rowIdx int, dateCol, metricCol ColumnIndex) (models.Record, bool) {
	g := models.Grid{row}
	date, ok := ParseDate(g.Cell(0, dateCol.Int()))
	if !ok {
		return models.Record{}, false
	}
	metric := g.Cell(0, metricCol.Int())
	if metric == "" {
		return models.Record{}, false
	}

	rec := models.Record{Row: rowIdx, Date: date, Metric: metric}
	if v, ok := ParseMetric(metric); ok {
		rec.Value = &v
	}
	return rec, true
}

// Records returns the valid data rows of grid in grid order, header excluded.
func Records(grid models.Grid, dateCol, metricCol ColumnIndex) []models.Record {
	var result []models.Record
	for rowIdx := 1; rowIdx < len(grid); rowIdx++ {
		if rec, ok := ScanRow(grid[rowIdx], rowIdx, dateCol, metricCol); ok {
			result = append(result, rec)
		}
	}
	return result
}

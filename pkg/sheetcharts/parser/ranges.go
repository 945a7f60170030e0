package parser

import "github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"

// LocateRange finds the span between the first and last valid data row.
// Invalid rows strictly inside the span are kept as gaps.
// It returns ErrNoData when the grid has no valid row.
func LocateRange(grid models.Grid, sheetID int64, dateCol, metricCol ColumnIndex) (*models.DataSpan, error) {
	first, last := -1, -1
	for rowIdx := 1; rowIdx < len(grid); rowIdx++ {
		if _, ok := ScanRow(grid[rowIdx], rowIdx, dateCol, metricCol); !ok {
			continue
		}
		if first < 0 {
			first = rowIdx
		}
		last = rowIdx
	}

	if first < 0 {
		return nil, ErrNoData
	}

	end := last + 1
	return &models.DataSpan{
		X:         models.ColumnRange(sheetID, first, end, dateCol.Int()),
		Y:         models.ColumnRange(sheetID, first, end, metricCol.Int()),
		FirstRow:  first,
		LastRow:   end,
		MetricCol: metricCol.Int(),
	}, nil
}

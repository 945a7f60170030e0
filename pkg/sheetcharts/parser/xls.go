package parser

import (
	"fmt"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/extrame/xls"
)

// ReadXLSGrid reads a sheet of a legacy .xls workbook. An empty sheetName
// selects the first sheet. The returned id is the sheet's zero-based position
// in the file. It only identifies the sheet locally and is not a workbook
// sheetId.
func ReadXLSGrid(path, sheetName string) (models.Grid, int64, error) {
	wb, err := xls.Open(path, "utf-8")
	if err != nil {
		return nil, 0, err
	}

	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil || (sheetName != "" && sheet.Name != sheetName) {
			continue
		}

		grid := make(models.Grid, 0, int(sheet.MaxRow)+1)
		for r := 0; r <= int(sheet.MaxRow); r++ {
			row := sheet.Row(r)
			if row == nil {
				grid = append(grid, nil)
				continue
			}
			cells := make([]string, 0, row.LastCol()+1)
			for c := 0; c <= row.LastCol(); c++ {
				cells = append(cells, row.Col(c))
			}
			grid = append(grid, cells)
		}
		return grid, int64(i), nil
	}

	return nil, 0, fmt.Errorf("%w: %q in %s", ErrSheetNotFound, sheetName, path)
}

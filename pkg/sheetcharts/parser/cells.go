package parser

import (
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid reads every row of a sheet as formatted text.
// Trailing empty cells are dropped by excelize, so rows may differ in length.
func ReadGrid(f *excelize.File, sheetName string) (models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return models.Grid(rows), nil
}

// SheetID returns the workbook sheetId of sheetName, or false when absent.
func SheetID(f *excelize.File, sheetName string) (int64, bool) {
	for id, name := range f.GetSheetMap() {
		if name == sheetName {
			return int64(id), true
		}
	}
	return 0, false
}

// SheetName returns the sheet name owning sheetID.
func SheetName(f *excelize.File, sheetID int64) (string, bool) {
	name, ok := f.GetSheetMap()[int(sheetID)]
	return name, ok
}

package parser

import (
	"fmt"
	"strings"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/xuri/excelize/v2"
)

// FormatA1 renders r as an absolute reference such as 'Sheet1'!$A$2:$A$10.
func FormatA1(sheetName string, r models.RowRange) string {
	start, err := excelize.CoordinatesToCellName(r.StartCol+1, r.StartRow+1, true)
	if err != nil {
		return ""
	}
	end, err := excelize.CoordinatesToCellName(r.EndCol, r.EndRow, true)
	if err != nil {
		return ""
	}
	if sheetName == "" {
		return start + ":" + end
	}
	return QuoteSheetName(sheetName) + "!" + start + ":" + end
}

// FormatCell renders a zero-based coordinate as a relative cell name (A1).
func FormatCell(row, col int) (string, error) {
	return excelize.CoordinatesToCellName(col+1, row+1)
}

// ParseA1Range parses 'Sheet'!$A$1:$D$10 (sheet optional) into a zero-based,
// end-exclusive range. A single cell reference yields a 1x1 range.
func ParseA1Range(ref string) (string, models.RowRange, error) {
	ref = strings.TrimSpace(ref)
	var sheetName string
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheetName = strings.ReplaceAll(strings.Trim(ref[:idx], "'"), "''", "'")
		ref = ref[idx+1:]
	}

	ref = strings.ReplaceAll(ref, "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return "", models.RowRange{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", models.RowRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return "", models.RowRange{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}

	return sheetName, models.RowRange{
		StartRow: startRow - 1,
		EndRow:   endRow,
		StartCol: startCol - 1,
		EndCol:   endCol,
	}, nil
}

// QuoteSheetName quotes a sheet name for use in a reference when it holds
// anything but letters, digits and underscores.
func QuoteSheetName(name string) string {
	for _, r := range name {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z') {
			return "'" + strings.ReplaceAll(name, "'", "''") + "'"
		}
	}
	return name
}

package models

// ChartRef is an existing remote chart.
type ChartRef struct {
	// ID is the chart identifier assigned by the remote service.
	ID int64 `json:"chartId"`
	// Title is the chart title as stored remotely.
	Title string `json:"title"`
	// Anchor is the chart's anchor cell when the backend reports one.
	Anchor *Placement `json:"anchor,omitempty"`
}

// SheetCharts lists the charts living on one sheet.
type SheetCharts struct {
	// SheetID is the sheet identifier.
	SheetID int64 `json:"sheetId"`
	// Title is the sheet name.
	Title string `json:"title"`
	// Charts are the sheet's charts in the order the backend reports them.
	Charts []ChartRef `json:"charts"`
}

// Inventory is the chart listing of a whole spreadsheet, in sheet order.
type Inventory struct {
	Sheets []SheetCharts `json:"sheets"`
}

// Len returns the total chart count.
func (inv Inventory) Len() int {
	n := 0
	for _, s := range inv.Sheets {
		n += len(s.Charts)
	}
	return n
}

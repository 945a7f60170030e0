package models

import "strings"

// ChartKind is the remote basic chart type.
type ChartKind string

const (
	ChartLine        ChartKind = "LINE"
	ChartBar         ChartKind = "BAR"
	ChartColumn      ChartKind = "COLUMN"
	ChartArea        ChartKind = "AREA"
	ChartScatter     ChartKind = "SCATTER"
	ChartSteppedArea ChartKind = "STEPPED_AREA"
)

// ParseChartKind normalizes a kind name such as "line" to its ChartKind.
// Unknown names are passed through upper-cased.
func ParseChartKind(s string) ChartKind {
	return ChartKind(strings.ToUpper(strings.TrimSpace(s)))
}

// Legend positions accepted by the remote API.
const (
	LegendBottom = "BOTTOM_LEGEND"
	LegendTop    = "TOP_LEGEND"
	LegendLeft   = "LEFT_LEGEND"
	LegendRight  = "RIGHT_LEGEND"
	LegendNone   = "NO_LEGEND"
)

// Default visual parameters.
const (
	DefaultXAxisTitle   = "Date"
	DefaultYAxisTitle   = "Weight"
	DefaultWidthPixels  = 800
	DefaultHeightPixels = 400
	WeeklyWidthPixels   = 400
	WeeklyHeightPixels  = 400
)

// Placement anchors a new chart on a target sheet.
type Placement struct {
	// SheetID is the target sheet.
	SheetID int64 `json:"sheetId"`
	// Row is the zero-based anchor row.
	Row int `json:"rowIndex"`
	// Col is the zero-based anchor column.
	Col int `json:"columnIndex"`
	// OffsetX is the horizontal pixel offset from the anchor cell.
	OffsetX int `json:"offsetXPixels,omitempty"`
	// OffsetY is the vertical pixel offset from the anchor cell.
	OffsetY int `json:"offsetYPixels,omitempty"`
	// Width is the chart width in pixels (0 means default).
	Width int `json:"widthPixels,omitempty"`
	// Height is the chart height in pixels (0 means default).
	Height int `json:"heightPixels,omitempty"`
}

// ChartDescriptor is the locally computed description of one chart.
// It is rebuilt from the grid on every run and maps to a remote chart by Title.
type ChartDescriptor struct {
	Title      string     `json:"title"`
	Kind       ChartKind  `json:"kind"`
	Smooth     bool       `json:"smooth,omitempty"`
	Legend     string     `json:"legend,omitempty"`
	XAxisTitle string     `json:"x_axis_title,omitempty"`
	YAxisTitle string     `json:"y_axis_title,omitempty"`
	X          RowRange   `json:"x"`
	Y          RowRange   `json:"y"`
	Window     AxisWindow `json:"window"`
	// Placement is required to create the chart, ignored on update.
	Placement *Placement `json:"placement,omitempty"`
	// ChartID is the existing remote chart, required to update.
	ChartID *int64 `json:"chart_id,omitempty"`
}

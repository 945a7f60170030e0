package models

// Request is one batchUpdate request. Exactly one field is set.
type Request struct {
	AddChart        *AddChartRequest        `json:"addChart,omitempty"`
	UpdateChartSpec *UpdateChartSpecRequest `json:"updateChartSpec,omitempty"`
}

// IsCreate reports whether the request adds a chart.
func (r Request) IsCreate() bool {
	return r.AddChart != nil
}

// Spec returns the chart spec carried by the request.
func (r Request) Spec() *ChartSpec {
	switch {
	case r.AddChart != nil:
		return &r.AddChart.Chart.Spec
	case r.UpdateChartSpec != nil:
		return &r.UpdateChartSpec.Spec
	}
	return nil
}

// BatchUpdate is the request body submitted to the remote service.
type BatchUpdate struct {
	Requests []Request `json:"requests"`
}

// AddChartRequest creates a chart.
type AddChartRequest struct {
	Chart EmbeddedChart `json:"chart"`
}

// UpdateChartSpecRequest replaces the spec of an existing chart.
type UpdateChartSpecRequest struct {
	ChartID int64     `json:"chartId"`
	Spec    ChartSpec `json:"spec"`
}

// EmbeddedChart is a chart with its position.
type EmbeddedChart struct {
	Spec     ChartSpec              `json:"spec"`
	Position EmbeddedObjectPosition `json:"position"`
}

// EmbeddedObjectPosition places a chart over the grid.
type EmbeddedObjectPosition struct {
	OverlayPosition *OverlayPosition `json:"overlayPosition"`
}

// OverlayPosition anchors a chart to a cell with pixel offsets and size.
type OverlayPosition struct {
	AnchorCell    GridCoordinate `json:"anchorCell"`
	OffsetXPixels int            `json:"offsetXPixels"`
	OffsetYPixels int            `json:"offsetYPixels"`
	WidthPixels   int            `json:"widthPixels"`
	HeightPixels  int            `json:"heightPixels"`
}

// GridCoordinate is a zero-based cell on a sheet.
type GridCoordinate struct {
	SheetID     int64 `json:"sheetId"`
	RowIndex    int   `json:"rowIndex"`
	ColumnIndex int   `json:"columnIndex"`
}

// ChartSpec is the declarative chart specification.
type ChartSpec struct {
	Title      string         `json:"title"`
	BasicChart BasicChartSpec `json:"basicChart"`
}

// BasicChartSpec describes a line/bar/area style chart.
type BasicChartSpec struct {
	ChartType      ChartKind          `json:"chartType"`
	LegendPosition string             `json:"legendPosition"`
	Axis           []BasicChartAxis   `json:"axis"`
	Domains        []BasicChartDomain `json:"domains"`
	Series         []BasicChartSeries `json:"series"`
	LineSmoothing  bool               `json:"lineSmoothing,omitempty"`
}

// Axis positions.
const (
	BottomAxis = "BOTTOM_AXIS"
	LeftAxis   = "LEFT_AXIS"
)

// BasicChartAxis is one chart axis.
type BasicChartAxis struct {
	Position          string                      `json:"position"`
	Title             string                      `json:"title"`
	ViewWindowOptions *ChartAxisViewWindowOptions `json:"viewWindowOptions,omitempty"`
}

// ChartAxisViewWindowOptions clamps the visible axis range.
type ChartAxisViewWindowOptions struct {
	ViewWindowMin float64 `json:"viewWindowMin"`
	ViewWindowMax float64 `json:"viewWindowMax"`
}

// BasicChartDomain is the x-axis data.
type BasicChartDomain struct {
	Domain ChartData `json:"domain"`
}

// BasicChartSeries is one plotted series.
type BasicChartSeries struct {
	Series     ChartData `json:"series"`
	TargetAxis string    `json:"targetAxis"`
}

// ChartData references source cells.
type ChartData struct {
	SourceRange ChartSourceRange `json:"sourceRange"`
}

// ChartSourceRange lists the source ranges of a domain or series.
type ChartSourceRange struct {
	Sources []RowRange `json:"sources"`
}

// Window returns the value-axis view window of the spec, if any.
func (s ChartSpec) Window() (AxisWindow, bool) {
	for _, ax := range s.BasicChart.Axis {
		if ax.Position == LeftAxis && ax.ViewWindowOptions != nil {
			return AxisWindow{Min: ax.ViewWindowOptions.ViewWindowMin, Max: ax.ViewWindowOptions.ViewWindowMax}, true
		}
	}
	return AxisWindow{}, false
}

// DomainRange returns the first domain source range.
func (s ChartSpec) DomainRange() (RowRange, bool) {
	if len(s.BasicChart.Domains) == 0 || len(s.BasicChart.Domains[0].Domain.SourceRange.Sources) == 0 {
		return RowRange{}, false
	}
	return s.BasicChart.Domains[0].Domain.SourceRange.Sources[0], true
}

// SeriesRange returns the first series source range.
func (s ChartSpec) SeriesRange() (RowRange, bool) {
	if len(s.BasicChart.Series) == 0 || len(s.BasicChart.Series[0].Series.SourceRange.Sources) == 0 {
		return RowRange{}, false
	}
	return s.BasicChart.Series[0].Series.SourceRange.Sources[0], true
}

package workbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"github.com/xuri/excelize/v2"
)

// chartTypes maps chart kinds to excelize chart types.
var chartTypes = map[models.ChartKind]excelize.ChartType{
	models.ChartLine:        excelize.Line,
	models.ChartBar:         excelize.Bar,
	models.ChartColumn:      excelize.Col,
	models.ChartArea:        excelize.Area,
	models.ChartSteppedArea: excelize.Area,
	models.ChartScatter:     excelize.Scatter,
}

// legendPositions maps legend positions to excelize names.
var legendPositions = map[string]string{
	models.LegendBottom: "bottom",
	models.LegendTop:    "top",
	models.LegendLeft:   "left",
	models.LegendRight:  "right",
	models.LegendNone:   "none",
}

// ListCharts lists the charts embedded in the workbook. Chart ids are the
// chart part numbers of the current package.
func (w *Workbook) ListCharts(ctx context.Context) (models.Inventory, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	buf, err := w.file.WriteToBuffer()
	if err != nil {
		return models.Inventory{}, fmt.Errorf("serialize workbook: %w", err)
	}
	charts, err := parser.ExtractChartsFromBytes(buf.Bytes())
	if err != nil {
		return models.Inventory{}, fmt.Errorf("read charts: %w", err)
	}

	w.anchors = make(map[int64]chartLocation, len(charts))
	for _, c := range charts {
		cell, err := parser.FormatCell(c.Anchor.Row, c.Anchor.Col)
		if err != nil {
			continue
		}
		anchor := c.Anchor
		w.anchors[c.ID] = chartLocation{
			sheet: c.SheetName,
			cell:  cell,
			ref:   models.ChartRef{ID: c.ID, Title: c.Title, Anchor: &anchor},
		}
	}
	return parser.InventoryOf(charts), nil
}

// Submit applies one request. An update replaces the chart drawn at the
// anchor recorded by the last ListCharts.
func (w *Workbook) Submit(ctx context.Context, req models.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	switch {
	case req.AddChart != nil:
		pos := req.AddChart.Chart.Position.OverlayPosition
		if pos == nil {
			return errors.New("addChart without overlay position")
		}
		sheet, ok := parser.SheetName(w.file, pos.AnchorCell.SheetID)
		if !ok {
			return fmt.Errorf("%w: id %d", parser.ErrSheetNotFound, pos.AnchorCell.SheetID)
		}
		cell, err := parser.FormatCell(pos.AnchorCell.RowIndex, pos.AnchorCell.ColumnIndex)
		if err != nil {
			return err
		}
		chart, err := w.chartFor(req.AddChart.Chart.Spec)
		if err != nil {
			return err
		}
		chart.Dimension = excelize.ChartDimension{Width: uint(pos.WidthPixels), Height: uint(pos.HeightPixels)}
		chart.Format = excelize.GraphicOptions{OffsetX: pos.OffsetXPixels, OffsetY: pos.OffsetYPixels}
		return w.file.AddChart(sheet, cell, chart)

	case req.UpdateChartSpec != nil:
		loc, ok := w.anchors[req.UpdateChartSpec.ChartID]
		if !ok {
			return fmt.Errorf("chart %d not found", req.UpdateChartSpec.ChartID)
		}
		chart, err := w.chartFor(req.UpdateChartSpec.Spec)
		if err != nil {
			return err
		}
		if a := loc.ref.Anchor; a != nil {
			if a.Width > 0 && a.Height > 0 {
				chart.Dimension = excelize.ChartDimension{Width: uint(a.Width), Height: uint(a.Height)}
			}
			chart.Format = excelize.GraphicOptions{OffsetX: a.OffsetX, OffsetY: a.OffsetY}
		}
		if err := w.file.DeleteChart(loc.sheet, loc.cell); err != nil {
			return fmt.Errorf("remove chart %d: %w", req.UpdateChartSpec.ChartID, err)
		}
		return w.file.AddChart(loc.sheet, loc.cell, chart)
	}
	return errors.New("empty request")
}

// chartFor converts a chart spec to an excelize chart.
func (w *Workbook) chartFor(spec models.ChartSpec) (*excelize.Chart, error) {
	x, ok := spec.DomainRange()
	if !ok {
		return nil, errors.New("chart spec without domain")
	}
	y, ok := spec.SeriesRange()
	if !ok {
		return nil, errors.New("chart spec without series")
	}
	xSheet, ok := parser.SheetName(w.file, x.SheetID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", parser.ErrSheetNotFound, x.SheetID)
	}
	ySheet, ok := parser.SheetName(w.file, y.SheetID)
	if !ok {
		return nil, fmt.Errorf("%w: id %d", parser.ErrSheetNotFound, y.SheetID)
	}

	basic := spec.BasicChart
	typ, ok := chartTypes[basic.ChartType]
	if !ok {
		return nil, fmt.Errorf("unsupported chart type %q", basic.ChartType)
	}

	chart := &excelize.Chart{
		Type:   typ,
		Title:  []excelize.RichTextRun{{Text: spec.Title}},
		Legend: excelize.ChartLegend{Position: legendPositions[basic.LegendPosition]},
		Series: []excelize.ChartSeries{{
			Name:       parser.FormatA1(ySheet, models.ColumnRange(y.SheetID, 0, 1, y.StartCol)),
			Categories: parser.FormatA1(xSheet, x),
			Values:     parser.FormatA1(ySheet, y),
			Line:       excelize.ChartLine{Smooth: basic.LineSmoothing},
		}},
	}
	if chart.Legend.Position == "" {
		chart.Legend.Position = "bottom"
	}

	for _, axis := range basic.Axis {
		switch axis.Position {
		case models.BottomAxis:
			chart.XAxis.Title = []excelize.RichTextRun{{Text: axis.Title}}
		case models.LeftAxis:
			chart.YAxis.Title = []excelize.RichTextRun{{Text: axis.Title}}
			if vw := axis.ViewWindowOptions; vw != nil {
				lo, hi := vw.ViewWindowMin, vw.ViewWindowMax
				chart.YAxis.Minimum = &lo
				chart.YAxis.Maximum = &hi
			}
		}
	}
	return chart, nil
}

// Package builder turns chart descriptors into create or update requests.
package builder

import (
	"errors"
	"fmt"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// ErrInvalidArgument reports a caller contract violation.
var ErrInvalidArgument = errors.New("invalid argument")

// Build returns an update request when update is true, a create request otherwise.
func Build(d models.ChartDescriptor, update bool) (models.Request, error) {
	if update {
		return BuildUpdate(d)
	}
	return BuildCreate(d)
}

// BuildCreate returns an addChart request. The descriptor must carry a placement.
func BuildCreate(d models.ChartDescriptor) (models.Request, error) {
	if d.Placement == nil {
		return models.Request{}, fmt.Errorf("%w: create request for %q needs a placement", ErrInvalidArgument, d.Title)
	}
	spec, err := buildSpec(d)
	if err != nil {
		return models.Request{}, err
	}

	p := *d.Placement
	width, height := p.Width, p.Height
	if width <= 0 {
		width = models.DefaultWidthPixels
	}
	if height <= 0 {
		height = models.DefaultHeightPixels
	}

	return models.Request{
		AddChart: &models.AddChartRequest{
			Chart: models.EmbeddedChart{
				Spec: spec,
				Position: models.EmbeddedObjectPosition{
					OverlayPosition: &models.OverlayPosition{
						AnchorCell: models.GridCoordinate{
							SheetID:     p.SheetID,
							RowIndex:    p.Row,
							ColumnIndex: p.Col,
						},
						OffsetXPixels: p.OffsetX,
						OffsetYPixels: p.OffsetY,
						WidthPixels:   width,
						HeightPixels:  height,
					},
				},
			},
		},
	}, nil
}

// BuildUpdate returns an updateChartSpec request. The descriptor must carry
// the existing chart id; there is no fallback to create.
func BuildUpdate(d models.ChartDescriptor) (models.Request, error) {
	if d.ChartID == nil {
		return models.Request{}, fmt.Errorf("%w: update request for %q needs a chart id", ErrInvalidArgument, d.Title)
	}
	spec, err := buildSpec(d)
	if err != nil {
		return models.Request{}, err
	}
	return models.Request{
		UpdateChartSpec: &models.UpdateChartSpecRequest{
			ChartID: *d.ChartID,
			Spec:    spec,
		},
	}, nil
}

func buildSpec(d models.ChartDescriptor) (models.ChartSpec, error) {
	if !d.X.Valid() || !d.Y.Valid() {
		return models.ChartSpec{}, fmt.Errorf("%w: empty source range for %q", ErrInvalidArgument, d.Title)
	}
	if d.Window.Min > d.Window.Max {
		return models.ChartSpec{}, fmt.Errorf("%w: axis window %v > %v for %q", ErrInvalidArgument, d.Window.Min, d.Window.Max, d.Title)
	}

	kind := d.Kind
	if kind == "" {
		kind = models.ChartLine
	}

	return models.ChartSpec{
		Title: d.Title,
		BasicChart: models.BasicChartSpec{
			ChartType:      kind,
			LegendPosition: orDefault(d.Legend, models.LegendBottom),
			Axis: []models.BasicChartAxis{
				{
					Position: models.BottomAxis,
					Title:    orDefault(d.XAxisTitle, models.DefaultXAxisTitle),
				},
				{
					Position: models.LeftAxis,
					Title:    orDefault(d.YAxisTitle, models.DefaultYAxisTitle),
					ViewWindowOptions: &models.ChartAxisViewWindowOptions{
						ViewWindowMin: d.Window.Min,
						ViewWindowMax: d.Window.Max,
					},
				},
			},
			Domains: []models.BasicChartDomain{
				{Domain: models.ChartData{SourceRange: models.ChartSourceRange{Sources: []models.RowRange{d.X}}}},
			},
			Series: []models.BasicChartSeries{
				{
					Series:     models.ChartData{SourceRange: models.ChartSourceRange{Sources: []models.RowRange{d.Y}}},
					TargetAxis: models.LeftAxis,
				},
			},
			LineSmoothing: d.Smooth,
		},
	}, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

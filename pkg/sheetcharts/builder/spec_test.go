package builder

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

func descriptor() models.ChartDescriptor {
	return models.ChartDescriptor{
		Title:  "Weight over Time",
		Kind:   models.ChartLine,
		X:      models.ColumnRange(0, 1, 4, 0),
		Y:      models.ColumnRange(0, 1, 4, 3),
		Window: models.AxisWindow{Min: 70.3, Max: 73.8},
	}
}

func TestBuildCreate(t *testing.T) {
	d := descriptor()
	d.Placement = &models.Placement{SheetID: 42, Row: 0, Col: 2}

	req, err := Build(d, false)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.UpdateChartSpec != nil || req.AddChart == nil {
		t.Fatalf("expected only addChart, got %+v", req)
	}

	pos := req.AddChart.Chart.Position.OverlayPosition
	if pos.AnchorCell.SheetID != 42 || pos.AnchorCell.ColumnIndex != 2 {
		t.Errorf("anchor = %+v", pos.AnchorCell)
	}
	if pos.WidthPixels != 800 || pos.HeightPixels != 400 || pos.OffsetXPixels != 0 || pos.OffsetYPixels != 0 {
		t.Errorf("size = %dx%d offset %d,%d", pos.WidthPixels, pos.HeightPixels, pos.OffsetXPixels, pos.OffsetYPixels)
	}

	spec := req.AddChart.Chart.Spec
	if spec.BasicChart.LegendPosition != models.LegendBottom {
		t.Errorf("legend = %q", spec.BasicChart.LegendPosition)
	}
	if spec.BasicChart.Axis[0].Title != "Date" || spec.BasicChart.Axis[1].Title != "Weight" {
		t.Errorf("axis titles = %q, %q", spec.BasicChart.Axis[0].Title, spec.BasicChart.Axis[1].Title)
	}
	if w, ok := spec.Window(); !ok || w != d.Window {
		t.Errorf("window = %+v, %v", w, ok)
	}
	if r, _ := spec.SeriesRange(); r != d.Y {
		t.Errorf("series range = %+v", r)
	}
	if spec.BasicChart.Series[0].TargetAxis != models.LeftAxis {
		t.Errorf("target axis = %q", spec.BasicChart.Series[0].TargetAxis)
	}
}

func TestBuildCreate_CustomSize(t *testing.T) {
	d := descriptor()
	d.Smooth = true
	d.Placement = &models.Placement{Col: 4, Width: 400, Height: 400, OffsetX: 5}

	req, err := BuildCreate(d)
	if err != nil {
		t.Fatalf("BuildCreate failed: %v", err)
	}
	pos := req.AddChart.Chart.Position.OverlayPosition
	if pos.WidthPixels != 400 || pos.HeightPixels != 400 || pos.OffsetXPixels != 5 {
		t.Errorf("position = %+v", pos)
	}
	if !req.AddChart.Chart.Spec.BasicChart.LineSmoothing {
		t.Errorf("expected line smoothing")
	}
}

func TestBuildCreate_MissingPlacement(t *testing.T) {
	if _, err := BuildCreate(descriptor()); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestBuildUpdate(t *testing.T) {
	d := descriptor()
	id := int64(1234)
	d.ChartID = &id
	d.Placement = &models.Placement{SheetID: 9, Row: 30, Col: 30}

	req, err := Build(d, true)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if req.AddChart != nil || req.UpdateChartSpec == nil {
		t.Fatalf("expected only updateChartSpec, got %+v", req)
	}
	if req.UpdateChartSpec.ChartID != 1234 {
		t.Errorf("chart id = %d", req.UpdateChartSpec.ChartID)
	}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	body := string(data)
	for _, key := range []string{"addChart", "overlayPosition", "anchorCell"} {
		if strings.Contains(body, key) {
			t.Errorf("update payload contains %q: %s", key, body)
		}
	}
	if !strings.Contains(body, `"viewWindowMin":70.3`) {
		t.Errorf("update payload lacks axis window: %s", body)
	}
}

func TestBuildUpdate_MissingChartID(t *testing.T) {
	req, err := Build(descriptor(), true)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
	if req.AddChart != nil || req.UpdateChartSpec != nil {
		t.Fatalf("expected empty request on error, got %+v", req)
	}
}

func TestBuild_InvalidRange(t *testing.T) {
	d := descriptor()
	d.Placement = &models.Placement{}
	d.X = models.RowRange{}
	if _, err := Build(d, false); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

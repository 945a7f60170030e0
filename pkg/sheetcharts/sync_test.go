package sheetcharts

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/metrics"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/output"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/reconcile"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// staticGrid is a fixed in-memory grid source.
type staticGrid struct {
	grid models.Grid
	id   int64
	err  error
}

func (s staticGrid) Rows(ctx context.Context) (models.Grid, error) {
	return s.grid, s.err
}

func (s staticGrid) SheetID() int64 {
	return s.id
}

var weightGrid = models.Grid{
	{"Date", "Steps", "Notes", "Weight"},
	{"2025-01-06", "", "", "72.3"},
	{"2025-01-07", "", "", "71.8"},
	{"January", "", "", ""},
	{"2025-01-12", "", "", "71.9"},
	{"2025-01-13", "", "", "72.1"},
}

func newTestChart() *Chart {
	return &Chart{
		Name:      "Weight over Time",
		Kind:      models.ChartLine,
		Source:    staticGrid{grid: weightGrid, id: 7},
		DateCol:   0,
		MetricCol: 3,
		Anchor:    models.Placement{SheetID: 9, Row: 0, Col: 0},
	}
}

func newBackend(t *testing.T) *output.FileBackend {
	t.Helper()
	b, err := output.OpenFileBackend(filepath.Join(t.TempDir(), "inventory.json"), "", false)
	if err != nil {
		t.Fatalf("OpenFileBackend failed: %v", err)
	}
	return b
}

func TestSync_Whole(t *testing.T) {
	b := newBackend(t)
	collector := metrics.NewCollector("sync_test")
	rec := reconcile.New(b, b, reconcile.WithMetrics(collector))
	opts := Options{Mode: ModeWhole, Metrics: collector}

	report, err := newTestChart().Sync(context.Background(), rec, opts)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if report.Created() != 1 || report.Failed() != 0 {
		t.Fatalf("report = %+v", report)
	}
	if report.Rows != 5 || report.ValidRows != 4 {
		t.Errorf("rows = %d/%d, expected 4 valid of 5", report.ValidRows, report.Rows)
	}

	spec := report.Outcomes[0].Request.Spec()
	x, _ := spec.DomainRange()
	if x.SheetID != 7 || x.StartRow != 1 || x.EndRow != 6 || x.StartCol != 0 {
		t.Errorf("domain = %+v", x)
	}
	w, _ := spec.Window()
	if !approx(w.Min, 70.3) || !approx(w.Max, 73.8) {
		t.Errorf("window = %+v, expected (70.3, 73.8)", w)
	}
	if got := testutil.ToFloat64(collector.RowsValid); got != 4 {
		t.Errorf("rows_valid_total = %v", got)
	}

	again, err := newTestChart().Sync(context.Background(), rec, opts)
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if again.Updated() != 1 || again.Created() != 0 {
		t.Errorf("second sync = created %d updated %d", again.Created(), again.Updated())
	}
}

func TestSync_Weekly(t *testing.T) {
	b := newBackend(t)
	rec := reconcile.New(b, b)

	report, err := newTestChart().Sync(context.Background(), rec, Options{Mode: ModeWeekly})
	if err != nil {
		t.Fatalf("Sync failed: %v", err)
	}
	if report.Weeks != 2 || report.Created() != 2 {
		t.Fatalf("report = %+v", report)
	}

	tests := []struct {
		title string
		col   int
		min   float64
		max   float64
	}{
		{"Week 1 : 2025-01-06 - 2025-01-12", 0, 70.3, 73.8},
		{"Week 2 : 2025-01-13 - 2025-01-19", 4, 70.6, 73.6},
	}
	for i, tt := range tests {
		out := report.Outcomes[i]
		if out.Title != tt.title {
			t.Errorf("outcome %d title = %q, expected %q", i, out.Title, tt.title)
		}
		pos := out.Request.AddChart.Chart.Position.OverlayPosition
		if pos.AnchorCell.ColumnIndex != tt.col || pos.WidthPixels != 400 || pos.HeightPixels != 400 {
			t.Errorf("%s position = %+v", tt.title, pos)
		}
		w, _ := out.Request.Spec().Window()
		if !approx(w.Min, tt.min) || !approx(w.Max, tt.max) {
			t.Errorf("%s window = %+v", tt.title, w)
		}
		y, _ := out.Request.Spec().SeriesRange()
		if y.SheetID != 7 {
			t.Errorf("%s series sheet = %d", tt.title, y.SheetID)
		}
	}
}

func TestSync_NoData(t *testing.T) {
	b := newBackend(t)
	rec := reconcile.New(b, b)

	c := newTestChart()
	c.Source = staticGrid{grid: models.Grid{{"Date", "", "", "Weight"}, {"January"}}}

	for _, mode := range []Mode{ModeWhole, ModeWeekly} {
		_, err := c.Sync(context.Background(), rec, Options{Mode: mode})
		if !errors.Is(err, ErrNoData) {
			t.Errorf("%s: expected ErrNoData, got %v", mode, err)
		}
		var syncErr *SyncError
		if !errors.As(err, &syncErr) || syncErr.Stage != "locate" {
			t.Errorf("%s: expected locate SyncError, got %v", mode, err)
		}
	}
	if n := len(b.Pending().Requests); n != 0 {
		t.Errorf("submitted %d requests for an empty grid", n)
	}
}

func TestSync_ReadError(t *testing.T) {
	b := newBackend(t)
	c := newTestChart()
	boom := errors.New("boom")
	c.Source = staticGrid{err: boom}

	_, err := c.Sync(context.Background(), reconcile.New(b, b), DefaultOptions())
	if !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}
}

func TestOptions(t *testing.T) {
	if p := DefaultOptions().AxisPadding(); p != 1.5 {
		t.Errorf("AxisPadding = %v, expected 1.5", p)
	}
	pad := 0.5
	if p := (Options{Padding: &pad}).AxisPadding(); p != 0.5 {
		t.Errorf("AxisPadding = %v, expected 0.5", p)
	}

	tests := []struct {
		input   string
		wantErr bool
	}{
		{"whole", false},
		{"weekly", false},
		{"monthly", true},
	}
	for _, tt := range tests {
		_, err := ParseMode(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func approx(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}

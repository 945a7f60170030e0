package gsheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/builder"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"google.golang.org/api/option"
)

const spreadsheetJSON = `{
  "sheets": [
    {"properties": {"sheetId": 0, "title": "Sheet1"}},
    {"properties": {"sheetId": 1234, "title": "graphs"},
     "charts": [
       {"chartId": 77, "spec": {"title": "Weight over Time"},
        "position": {"overlayPosition": {"anchorCell": {"sheetId": 1234, "rowIndex": 0, "columnIndex": 4}, "widthPixels": 800, "heightPixels": 400}}}
     ]}
  ]
}`

// fakeSheets records batchUpdate bodies and serves canned responses.
type fakeSheets struct {
	bodies []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/spreadsheets/test-id"):
		io.WriteString(w, spreadsheetJSON)
	case r.Method == http.MethodGet && strings.Contains(r.URL.Path, "/values/"):
		io.WriteString(w, `{"range": "Sheet1!A1:D3", "values": [["Date", "", "", "Weight"], ["2025-01-06", "", "", "72.3"], ["2025-01-07"]]}`)
	case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, ":batchUpdate"):
		body, _ := io.ReadAll(r.Body)
		f.bodies = append(f.bodies, string(body))
		if strings.Contains(string(body), "addSheet") {
			io.WriteString(w, `{"replies": [{"addSheet": {"properties": {"sheetId": 99, "title": "new"}}}]}`)
			return
		}
		io.WriteString(w, `{"replies": [{}]}`)
	default:
		http.Error(w, `{"error": {"code": 404, "message": "not found"}}`, http.StatusNotFound)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeSheets) {
	t.Helper()
	fake := &fakeSheets{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(context.Background(), "test-id",
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return c, fake
}

func TestListCharts(t *testing.T) {
	c, _ := newTestClient(t)

	inv, err := c.ListCharts(context.Background())
	if err != nil {
		t.Fatalf("ListCharts failed: %v", err)
	}
	if len(inv.Sheets) != 2 || inv.Len() != 1 {
		t.Fatalf("inventory = %+v", inv)
	}
	ref := inv.Sheets[1].Charts[0]
	if ref.ID != 77 || ref.Title != "Weight over Time" {
		t.Errorf("chart = %+v", ref)
	}
	if ref.Anchor == nil || ref.Anchor.SheetID != 1234 || ref.Anchor.Col != 4 || ref.Anchor.Width != 800 {
		t.Errorf("anchor = %+v", ref.Anchor)
	}
}

func TestSheetRows(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	s, err := c.Sheet(ctx, "Sheet1")
	if err != nil {
		t.Fatalf("Sheet failed: %v", err)
	}
	if s.SheetID() != 0 {
		t.Errorf("SheetID = %d, expected 0", s.SheetID())
	}
	grid, err := s.Rows(ctx)
	if err != nil {
		t.Fatalf("Rows failed: %v", err)
	}
	if len(grid) != 3 || grid.Cell(1, 3) != "72.3" || grid.Cell(2, 3) != "" {
		t.Errorf("grid = %v", grid)
	}

	if _, err := c.Sheet(ctx, "missing"); err == nil {
		t.Error("expected ErrSheetNotFound")
	}
}

func TestEnsureSheet(t *testing.T) {
	c, fake := newTestClient(t)
	ctx := context.Background()

	id, err := c.EnsureSheet(ctx, "graphs")
	if err != nil || id != 1234 {
		t.Fatalf("EnsureSheet(existing) = %d, %v", id, err)
	}
	if len(fake.bodies) != 0 {
		t.Fatalf("existing sheet must not be added")
	}

	id, err = c.EnsureSheet(ctx, "new")
	if err != nil || id != 99 {
		t.Fatalf("EnsureSheet(new) = %d, %v", id, err)
	}
}

func TestSubmit_UpdateForcesZeroFields(t *testing.T) {
	c, fake := newTestClient(t)

	id := int64(77)
	req, err := builder.BuildUpdate(models.ChartDescriptor{
		Title:   "Weight over Time",
		X:       models.ColumnRange(0, 1, 5, 0),
		Y:       models.ColumnRange(0, 1, 5, 3),
		Window:  models.AxisWindow{Min: 0, Max: 100},
		ChartID: &id,
	})
	if err != nil {
		t.Fatalf("BuildUpdate failed: %v", err)
	}
	if err := c.Submit(context.Background(), req); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if len(fake.bodies) != 1 {
		t.Fatalf("expected one batchUpdate, got %d", len(fake.bodies))
	}

	var body struct {
		Requests []json.RawMessage `json:"requests"`
	}
	if err := json.Unmarshal([]byte(fake.bodies[0]), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body.Requests) != 1 {
		t.Fatalf("requests = %d", len(body.Requests))
	}
	got := string(body.Requests[0])
	for _, want := range []string{`"updateChartSpec"`, `"chartId":77`, `"viewWindowMin":0`, `"viewWindowMax":100`, `"sheetId":0`, `"startColumnIndex":0`} {
		if !strings.Contains(got, want) {
			t.Errorf("request lacks %s: %s", want, got)
		}
	}
	if strings.Contains(got, "addChart") || strings.Contains(got, "overlayPosition") {
		t.Errorf("update carries create fields: %s", got)
	}
}

func TestToSheetsRequest_Create(t *testing.T) {
	req, err := builder.BuildCreate(models.ChartDescriptor{
		Title:     "Week 1 : 2025-01-06 - 2025-01-12",
		X:         models.ColumnRange(5, 1, 3, 0),
		Y:         models.ColumnRange(5, 1, 3, 3),
		Window:    models.AxisWindow{Min: 70.3, Max: 73.8},
		Placement: &models.Placement{SheetID: 1234, Row: 0, Col: 4, Width: 400, Height: 400},
	})
	if err != nil {
		t.Fatalf("BuildCreate failed: %v", err)
	}

	out, err := toSheetsRequest(req)
	if err != nil {
		t.Fatalf("toSheetsRequest failed: %v", err)
	}
	if out.AddChart == nil || out.UpdateChartSpec != nil {
		t.Fatalf("expected addChart only")
	}
	op := out.AddChart.Chart.Position.OverlayPosition
	if op.AnchorCell.SheetId != 1234 || op.AnchorCell.ColumnIndex != 4 || op.WidthPixels != 400 {
		t.Errorf("overlay = %+v", op)
	}
	axis := out.AddChart.Chart.Spec.BasicChart.Axis[1]
	if axis.Position != "LEFT_AXIS" || axis.ViewWindowOptions.ViewWindowMin != 70.3 {
		t.Errorf("axis = %+v", axis)
	}

	if _, err := toSheetsRequest(models.Request{}); err == nil {
		t.Error("expected error for empty request")
	}
}

func TestApplyUpdates(t *testing.T) {
	c, fake := newTestClient(t)

	updates := []parser.CellUpdate{{Row: 1, Col: 3, Old: "72,3", New: "72.3"}}
	if err := c.ApplyUpdates(context.Background(), "Weight log", updates); err != nil {
		t.Fatalf("ApplyUpdates failed: %v", err)
	}
	if len(fake.bodies) != 1 || !strings.Contains(fake.bodies[0], `'Weight log'!D2`) || !strings.Contains(fake.bodies[0], "USER_ENTERED") {
		t.Errorf("body = %v", fake.bodies)
	}
}

package sheetcharts

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/reconcile"
)

// GridSource reads the current grid of one sheet.
type GridSource interface {
	Rows(ctx context.Context) (models.Grid, error)
	SheetID() int64
}

// Chart is a configured chart over a source grid.
type Chart struct {
	// Name is the title of the whole-dataset chart.
	Name string
	// Kind is the chart type. Empty means LINE.
	Kind models.ChartKind
	// Style "smooth" draws smoothed lines.
	Style string
	// Source provides the data grid.
	Source GridSource
	// DateCol and MetricCol locate the data columns.
	DateCol   parser.ColumnIndex
	MetricCol parser.ColumnIndex
	// Anchor is where new charts are placed. Weekly charts start here and
	// move right one slot per week.
	Anchor models.Placement

	XAxisTitle string
	YAxisTitle string
	Legend     string
}

// StyleSmooth selects line smoothing.
const StyleSmooth = "smooth"

// Report summarizes one sync.
type Report struct {
	Chart     string              `json:"chart"`
	Mode      Mode                `json:"mode"`
	RunAt     time.Time           `json:"run_at"`
	Rows      int                 `json:"rows"`
	ValidRows int                 `json:"valid_rows"`
	Weeks     int                 `json:"weeks,omitempty"`
	Outcomes  []reconcile.Outcome `json:"-"`
	Duration  time.Duration       `json:"duration"`
}

// Created returns the number of charts created.
func (r *Report) Created() int {
	return r.count(reconcile.ActionCreate, true)
}

// Updated returns the number of charts updated.
func (r *Report) Updated() int {
	return r.count(reconcile.ActionUpdate, true)
}

// Failed returns the number of charts that could not be applied.
func (r *Report) Failed() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK {
			n++
		}
	}
	return n
}

func (r *Report) count(a reconcile.Action, ok bool) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == a && o.OK == ok {
			n++
		}
	}
	return n
}

// Sync reads the source grid, builds the chart descriptors for opts.Mode and
// reconciles them. A grid without data returns ErrNoData and submits nothing.
// Per-chart failures are reported in the Report, not as an error.
func (c *Chart) Sync(ctx context.Context, rec *reconcile.Reconciler, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	timer := opts.Metrics.NewSyncTimer()

	mode := opts.Mode
	if mode == "" {
		mode = ModeWhole
	}
	report := &Report{Chart: c.Name, Mode: mode, RunAt: time.Now()}

	grid, err := c.Source.Rows(ctx)
	if err != nil {
		return report, NewSyncError(c.Name, "read", err)
	}
	report.Rows = len(grid.DataRows())
	report.ValidRows = len(parser.Records(grid, c.DateCol, c.MetricCol))
	opts.Metrics.RecordScan(report.Rows, report.ValidRows)

	logger.InfoContext(ctx, "[SYNC_START] Grid read",
		"chart", c.Name,
		"mode", string(mode),
		"rows", report.Rows,
		"valid_rows", report.ValidRows,
	)

	opts.Mode = mode
	descriptors, err := c.Descriptors(grid, opts)
	if err != nil {
		logger.WarnContext(ctx, "[NO_DATA] Nothing to chart", "chart", c.Name, "error", err)
		return report, NewSyncError(c.Name, "locate", err)
	}
	if opts.ShouldPartitionWeeks() {
		report.Weeks = len(descriptors)
		opts.Metrics.SetWeekBuckets(report.Weeks)
	}

	outcomes, err := rec.Reconcile(ctx, descriptors)
	report.Outcomes = outcomes
	report.Duration = timer.ObserveDuration()
	if err != nil {
		return report, NewSyncError(c.Name, "reconcile", err)
	}

	if report.Failed() == 0 {
		opts.Metrics.MarkSuccess(time.Now())
	}
	logger.InfoContext(ctx, "[SYNC_COMPLETE] Charts reconciled",
		"chart", c.Name,
		"created", report.Created(),
		"updated", report.Updated(),
		"failed", report.Failed(),
		"duration_ms", report.Duration.Milliseconds(),
	)
	return report, nil
}

// Descriptors builds the chart descriptors for grid without contacting the backend.
func (c *Chart) Descriptors(grid models.Grid, opts Options) ([]models.ChartDescriptor, error) {
	if opts.ShouldPartitionWeeks() {
		return c.weeklyDescriptors(grid, opts)
	}
	return c.wholeDescriptor(grid, opts)
}

func (c *Chart) wholeDescriptor(grid models.Grid, opts Options) ([]models.ChartDescriptor, error) {
	span, err := parser.LocateRange(grid, c.Source.SheetID(), c.DateCol, c.MetricCol)
	if err != nil {
		return nil, err
	}

	d := c.descriptor(c.Name)
	d.X = span.X
	d.Y = span.Y
	d.Window = parser.AxisWindowForSpan(grid, *span, opts.AxisPadding())
	anchor := c.Anchor
	d.Placement = &anchor
	return []models.ChartDescriptor{d}, nil
}

func (c *Chart) weeklyDescriptors(grid models.Grid, opts Options) ([]models.ChartDescriptor, error) {
	buckets := parser.PartitionWeeks(grid, c.DateCol, c.MetricCol)
	if len(buckets) == 0 {
		return nil, ErrNoData
	}

	sheetID := c.Source.SheetID()
	descriptors := make([]models.ChartDescriptor, 0, len(buckets))
	for _, b := range buckets {
		d := c.descriptor(reconcile.WeeklyTitle(b))
		d.X = b.X.OnSheet(sheetID)
		d.Y = b.Y.OnSheet(sheetID)
		d.Window = parser.WindowFromValues(b.Values(), opts.AxisPadding())
		p := reconcile.WeeklyPlacement(c.Anchor, b.Number)
		d.Placement = &p
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func (c *Chart) descriptor(title string) models.ChartDescriptor {
	return models.ChartDescriptor{
		Title:      title,
		Kind:       c.Kind,
		Smooth:     c.Style == StyleSmooth,
		Legend:     c.Legend,
		XAxisTitle: c.XAxisTitle,
		YAxisTitle: c.YAxisTitle,
	}
}

// Package reconcile keeps remote charts in sync with local descriptors by
// upserting on chart title.
package reconcile

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/builder"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/metrics"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// Inventory lists the charts that currently exist remotely.
type Inventory interface {
	ListCharts(ctx context.Context) (models.Inventory, error)
}

// Submitter executes one request against the remote service.
type Submitter interface {
	Submit(ctx context.Context, req models.Request) error
}

// Action is the reconciliation decision for one chart.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// Outcome is the per-chart result of a reconciliation.
type Outcome struct {
	Title   string
	Action  Action
	ChartID int64
	Request models.Request
	OK      bool
	Err     error
}

// SubmissionError is a request the remote service did not apply.
type SubmissionError struct {
	Title  string
	Action Action
	Err    error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("%s chart %q: %v", e.Action, e.Title, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// FindChartID returns the id of the first chart whose trimmed title matches
// title case-insensitively.
func FindChartID(inv models.Inventory, title string) (int64, bool) {
	want := strings.TrimSpace(title)
	for _, sheet := range inv.Sheets {
		for _, c := range sheet.Charts {
			if strings.EqualFold(strings.TrimSpace(c.Title), want) {
				return c.ID, true
			}
		}
	}
	return 0, false
}

// Reconciler decides create versus update and delegates submission.
type Reconciler struct {
	inventory Inventory
	submitter Submitter
	logger    *slog.Logger
	metrics   *metrics.Collector
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Reconciler) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(r *Reconciler) {
		r.metrics = c
	}
}

// New creates a Reconciler over an inventory and a submitter.
func New(inv Inventory, sub Submitter, opts ...Option) *Reconciler {
	r := &Reconciler{
		inventory: inv,
		submitter: sub,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reconcile lists the inventory once and upserts each descriptor in order.
// A failed chart does not stop the others. The error is non-nil only for a
// descriptor that violates the builder contract.
func (r *Reconciler) Reconcile(ctx context.Context, descriptors []models.ChartDescriptor) ([]Outcome, error) {
	inv, err := r.inventory.ListCharts(ctx)
	if err != nil {
		r.logger.ErrorContext(ctx, "[INVENTORY_ERROR] Listing existing charts failed", "error", err)
		outcomes := make([]Outcome, 0, len(descriptors))
		for _, d := range descriptors {
			outcomes = append(outcomes, Outcome{
				Title: d.Title,
				Err:   fmt.Errorf("list charts for %q: %w", d.Title, err),
			})
			r.metrics.RecordChart("lookup", false)
		}
		return outcomes, nil
	}

	outcomes := make([]Outcome, 0, len(descriptors))
	for _, d := range descriptors {
		out, err := r.Upsert(ctx, inv, d)
		if err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, nil
}

// Upsert builds and submits the request for one descriptor against inv.
// An existing chart is updated in place and the descriptor's placement is ignored.
func (r *Reconciler) Upsert(ctx context.Context, inv models.Inventory, d models.ChartDescriptor) (Outcome, error) {
	out := Outcome{Title: d.Title, Action: ActionCreate}

	if id, found := FindChartID(inv, d.Title); found {
		d.ChartID = &id
		d.Placement = nil
		out.Action = ActionUpdate
		out.ChartID = id
	} else {
		d.ChartID = nil
	}

	req, err := builder.Build(d, out.Action == ActionUpdate)
	if err != nil {
		return out, err
	}
	out.Request = req

	if err := r.submitter.Submit(ctx, req); err != nil {
		out.Err = &SubmissionError{Title: d.Title, Action: out.Action, Err: err}
		r.metrics.RecordChart(string(out.Action), false)
		r.logger.ErrorContext(ctx, "[CHART_FAILED] Chart request rejected",
			"title", d.Title,
			"action", string(out.Action),
			"error", err,
		)
		return out, nil
	}

	out.OK = true
	r.metrics.RecordChart(string(out.Action), true)
	if out.Action == ActionUpdate {
		r.logger.InfoContext(ctx, "[CHART_UPDATED] Chart spec updated", "title", d.Title, "chart_id", out.ChartID)
	} else {
		r.logger.InfoContext(ctx, "[CHART_CREATED] Chart added", "title", d.Title,
			"sheet_id", d.Placement.SheetID, "row", d.Placement.Row, "col", d.Placement.Col)
	}
	return out, nil
}

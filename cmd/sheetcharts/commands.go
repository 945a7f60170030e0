package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/metrics"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/output"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/reconcile"
)

func runSync(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	syncMode, err := sheetcharts.ParseMode(cfg.Chart.Mode)
	if err != nil {
		return err
	}

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	targetID, err := s.targetSheet(ctx, cfg.Chart.TargetSheet)
	if err != nil {
		return fmt.Errorf("target sheet: %w", err)
	}

	// Validated by config.Validate.
	dateCol, _ := parser.ParseColumn(cfg.Source.DateColumn)
	metricCol, _ := parser.ParseColumn(cfg.Source.MetricColumn)
	anchorCol, _ := parser.ParseColumn(cfg.Chart.AnchorCol)

	chart := &sheetcharts.Chart{
		Name:       cfg.Chart.Title,
		Kind:       models.ParseChartKind(cfg.Chart.Kind),
		Style:      cfg.Chart.Style,
		Source:     s.source,
		DateCol:    dateCol,
		MetricCol:  metricCol,
		Anchor:     models.Placement{SheetID: targetID, Row: cfg.Chart.AnchorRow, Col: anchorCol.Int()},
		XAxisTitle: cfg.Chart.XAxisTitle,
		YAxisTitle: cfg.Chart.YAxisTitle,
		Legend:     cfg.Chart.Legend,
	}

	collector := metrics.NewCollector(cfg.Metrics.Namespace)
	rec := reconcile.New(s.charts, s.charts, reconcile.WithLogger(logger), reconcile.WithMetrics(collector))
	padding := cfg.Chart.Padding

	report, err := chart.Sync(ctx, rec, sheetcharts.Options{
		Mode:    syncMode,
		Padding: &padding,
		Logger:  logger,
		Metrics: collector,
	})
	if errors.Is(err, sheetcharts.ErrNoData) {
		logger.WarnContext(ctx, "[NO_DATA] No valid rows in the source sheet", "sheet", cfg.Source.Sheet)
		return writeMetrics(cfg.Metrics.Textfile, collector)
	}
	if err != nil {
		return err
	}

	if err := s.flush(); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := writeMetrics(cfg.Metrics.Textfile, collector); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s): %d created, %d updated, %d failed\n",
		report.Chart, report.Mode, report.Created(), report.Updated(), report.Failed())
	if n := report.Failed(); n > 0 {
		return fmt.Errorf("%d of %d charts failed", n, len(report.Outcomes))
	}
	return nil
}

func runNormalize(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	grid, err := s.source.Rows(ctx)
	if err != nil {
		return err
	}
	dateCol, _ := parser.ParseColumn(cfg.Source.DateColumn)
	metricCol, _ := parser.ParseColumn(cfg.Source.MetricColumn)
	updates := parser.NormalizeRows(grid, dateCol, metricCol)

	for _, u := range updates {
		cell, _ := parser.FormatCell(u.Row, u.Col)
		logger.DebugContext(ctx, "[NORMALIZE] Cell rewritten", "cell", cell, "old", u.Old, "new", u.New)
	}
	if len(updates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to normalize")
		return nil
	}
	if s.writer == nil {
		return fmt.Errorf("%s is read-only: %d cells need rewriting", cfg.Source.Path, len(updates))
	}
	if err := s.writer.ApplyUpdates(ctx, cfg.Source.Sheet, updates); err != nil {
		return err
	}
	if err := s.flush(); err != nil {
		return fmt.Errorf("save: %w", err)
	}

	logger.InfoContext(ctx, "[NORMALIZE_COMPLETE] Source cells rewritten", "cells", len(updates))
	fmt.Fprintf(cmd.OutOrStdout(), "%d cells normalized\n", len(updates))
	return nil
}

func runInventory(cmd *cobra.Command, args []string) error {
	ctx, cancel, cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer cancel()

	s, err := openSession(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.close()

	inv, err := s.charts.ListCharts(ctx)
	if err != nil {
		return err
	}
	data, err := output.InventoryToJSON(&inv, cfg.Output.Pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func writeMetrics(path string, c *metrics.Collector) error {
	if path == "" {
		return nil
	}
	if err := c.WriteTextfile(path); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

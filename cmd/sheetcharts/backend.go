package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/auth"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/config"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/gsheets"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/output"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/workbook"
)

// chartBackend lists and applies chart requests.
type chartBackend interface {
	ListCharts(ctx context.Context) (models.Inventory, error)
	Submit(ctx context.Context, req models.Request) error
}

// sheetWriter is a backend that can add sheets and write cells.
type sheetWriter interface {
	EnsureSheet(ctx context.Context, name string) (int64, error)
	ApplyUpdates(ctx context.Context, sheetName string, updates []parser.CellUpdate) error
}

// session holds the opened source and backends of one command run.
type session struct {
	source sheetcharts.GridSource
	charts chartBackend
	writer sheetWriter

	close func() error
	flush func() error
}

// loadedGrid is a grid read once from a file.
type loadedGrid struct {
	grid models.Grid
	id   int64
}

func (g loadedGrid) Rows(ctx context.Context) (models.Grid, error) {
	return g.grid, nil
}

func (g loadedGrid) SheetID() int64 {
	return g.id
}

// errLocalSourceNeedsInventory rejects csv and xls sources without an
// inventory file. Their row ranges refer to a local grid, so they cannot be
// charted in or written back to a remote spreadsheet.
var errLocalSourceNeedsInventory = errors.New("csv and xls sources need --inventory")

// openSession picks the source and backends from the configuration: a local
// xlsx workbook serves as its own chart backend, csv and xls sources are
// read-only and chart into an inventory file, and no source path reads the
// remote spreadsheet.
func openSession(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*session, error) {
	s := &session{close: func() error { return nil }, flush: func() error { return nil }}

	switch ext := strings.ToLower(filepath.Ext(cfg.Source.Path)); {
	case cfg.Source.Path == "":
		client, err := openRemote(ctx, cfg)
		if err != nil {
			return nil, err
		}
		sheet, err := client.Sheet(ctx, cfg.Source.Sheet)
		if err != nil {
			return nil, err
		}
		s.source, s.charts, s.writer = sheet, client, client
		logger.DebugContext(ctx, "[SOURCE] Remote spreadsheet", "spreadsheet_id", client.SpreadsheetID(), "sheet", sheet.Name())

	case ext == ".xlsx" || ext == ".xlsm":
		wb, err := workbook.Open(cfg.Source.Path)
		if err != nil {
			return nil, fmt.Errorf("open workbook: %w", err)
		}
		sheet, err := wb.Sheet(cfg.Source.Sheet)
		if err != nil {
			wb.Close()
			return nil, err
		}
		s.source, s.charts, s.writer = sheet, wb, wb
		s.close = wb.Close
		s.flush = wb.Save
		logger.DebugContext(ctx, "[SOURCE] Workbook", "path", cfg.Source.Path, "sheet", sheet.Name())

	case ext == ".xls":
		grid, id, err := parser.ReadXLSGrid(cfg.Source.Path, cfg.Source.Sheet)
		if err != nil {
			return nil, fmt.Errorf("read xls: %w", err)
		}
		s.source = loadedGrid{grid: grid, id: id}

	case ext == ".csv":
		f, err := os.Open(cfg.Source.Path)
		if err != nil {
			return nil, err
		}
		grid, err := parser.ReadCSVGrid(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		s.source = loadedGrid{grid: grid}

	default:
		return nil, fmt.Errorf("%w: %s", sheetcharts.ErrUnsupportedFormat, cfg.Source.Path)
	}

	if cfg.Output.InventoryPath != "" {
		fb, err := output.OpenFileBackend(cfg.Output.InventoryPath, cfg.Output.BatchPath, cfg.Output.Pretty)
		if err != nil {
			return nil, err
		}
		s.charts = fb
		prev := s.flush
		s.flush = func() error {
			if err := fb.Flush(); err != nil {
				return err
			}
			return prev()
		}
		return s, nil
	}

	if s.charts == nil {
		return nil, fmt.Errorf("%w: %s", errLocalSourceNeedsInventory, cfg.Source.Path)
	}
	return s, nil
}

// targetSheet resolves the sheet new charts are placed on.
func (s *session) targetSheet(ctx context.Context, name string) (int64, error) {
	if _, isFile := s.charts.(*output.FileBackend); isFile || s.writer == nil {
		return s.source.SheetID(), nil
	}
	return s.writer.EnsureSheet(ctx, name)
}

func openRemote(ctx context.Context, cfg *config.Config) (*gsheets.Client, error) {
	if cfg.Remote.Credentials == "" {
		return nil, fmt.Errorf("remote spreadsheet needs credentials (SHEETCHARTS_CREDENTIALS or --credentials)")
	}
	upstream, err := auth.ServiceAccountSource(ctx, cfg.Remote.Credentials, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, err
	}
	ts := upstream
	if cfg.Remote.TokenCache != "" {
		ts = auth.NewStore(cfg.Remote.TokenCache, upstream)
	}
	return gsheets.NewClient(ctx, cfg.Remote.SpreadsheetID, option.WithTokenSource(ts))
}

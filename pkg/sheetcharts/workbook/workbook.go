// Package workbook is the local xlsx backend: it reads data grids, lists the
// embedded charts and applies chart requests with excelize.
package workbook

import (
	"context"
	"fmt"
	"sync"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"github.com/xuri/excelize/v2"
)

// Workbook is an open xlsx file.
type Workbook struct {
	path string
	file *excelize.File

	mu      sync.Mutex
	anchors map[int64]chartLocation
}

// chartLocation is where a listed chart is drawn.
type chartLocation struct {
	sheet string
	cell  string
	ref   models.ChartRef
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	return &Workbook{path: path, file: f, anchors: make(map[int64]chartLocation)}, nil
}

// New wraps an in-memory excelize file that Save writes to path.
func New(f *excelize.File, path string) *Workbook {
	return &Workbook{path: path, file: f, anchors: make(map[int64]chartLocation)}
}

// File returns the underlying excelize file.
func (w *Workbook) File() *excelize.File {
	return w.file
}

// Save writes the workbook back to its path.
func (w *Workbook) Save() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.file.SaveAs(w.path)
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// Sheet returns the grid source of the named sheet.
func (w *Workbook) Sheet(name string) (*Sheet, error) {
	id, ok := parser.SheetID(w.file, name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", parser.ErrSheetNotFound, name)
	}
	return &Sheet{wb: w, name: name, id: id}, nil
}

// EnsureSheet returns the id of the named sheet, creating it when absent.
func (w *Workbook) EnsureSheet(ctx context.Context, name string) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if id, ok := parser.SheetID(w.file, name); ok {
		return id, nil
	}
	if _, err := w.file.NewSheet(name); err != nil {
		return 0, fmt.Errorf("create sheet %q: %w", name, err)
	}
	id, ok := parser.SheetID(w.file, name)
	if !ok {
		return 0, fmt.Errorf("%w: %q after creation", parser.ErrSheetNotFound, name)
	}
	return id, nil
}

// ApplyUpdates writes normalized cells to the named sheet. Numeric text is
// stored as a number.
func (w *Workbook) ApplyUpdates(ctx context.Context, sheetName string, updates []parser.CellUpdate) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, u := range updates {
		cell, err := parser.FormatCell(u.Row, u.Col)
		if err != nil {
			return err
		}
		var value any = u.New
		if v, ok := parser.ParseMetric(u.New); ok {
			value = v
		}
		if err := w.file.SetCellValue(sheetName, cell, value); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheetName, cell, err)
		}
	}
	return nil
}

// Sheet is one worksheet used as a grid source.
type Sheet struct {
	wb   *Workbook
	name string
	id   int64
}

// Name returns the sheet name.
func (s *Sheet) Name() string {
	return s.name
}

// SheetID returns the workbook sheetId.
func (s *Sheet) SheetID() int64 {
	return s.id
}

// Rows reads the sheet grid.
func (s *Sheet) Rows(ctx context.Context) (models.Grid, error) {
	s.wb.mu.Lock()
	defer s.wb.mu.Unlock()
	return parser.ReadGrid(s.wb.file, s.name)
}

// Package gsheets is the Google Sheets backend. It reads data grids, lists
// embedded charts and submits chart requests through the Sheets v4 API.
package gsheets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const (
	inventoryFields  = "sheets(properties(sheetId,title),charts(chartId,spec(title),position(overlayPosition)))"
	propertiesFields = "sheets(properties(sheetId,title))"
)

// Client is bound to one spreadsheet.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewClient connects to the Sheets API. Authentication comes from opts,
// typically option.WithTokenSource.
func NewClient(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Client, error) {
	if spreadsheetID == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// SpreadsheetID returns the bound spreadsheet.
func (c *Client) SpreadsheetID() string {
	return c.spreadsheetID
}

// ListCharts lists every chart of the spreadsheet, in sheet order.
func (c *Client) ListCharts(ctx context.Context) (models.Inventory, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields(googleapi.Field(inventoryFields)).
		Context(ctx).
		Do()
	if err != nil {
		return models.Inventory{}, fmt.Errorf("get spreadsheet %s: %w", c.spreadsheetID, err)
	}
	return inventoryOf(ss), nil
}

func inventoryOf(ss *sheets.Spreadsheet) models.Inventory {
	var inv models.Inventory
	for _, sh := range ss.Sheets {
		if sh == nil || sh.Properties == nil {
			continue
		}
		sc := models.SheetCharts{SheetID: sh.Properties.SheetId, Title: sh.Properties.Title}
		for _, ch := range sh.Charts {
			if ch == nil {
				continue
			}
			ref := models.ChartRef{ID: ch.ChartId}
			if ch.Spec != nil {
				ref.Title = ch.Spec.Title
			}
			if ch.Position != nil && ch.Position.OverlayPosition != nil && ch.Position.OverlayPosition.AnchorCell != nil {
				op := ch.Position.OverlayPosition
				ref.Anchor = &models.Placement{
					SheetID: op.AnchorCell.SheetId,
					Row:     int(op.AnchorCell.RowIndex),
					Col:     int(op.AnchorCell.ColumnIndex),
					OffsetX: int(op.OffsetXPixels),
					OffsetY: int(op.OffsetYPixels),
					Width:   int(op.WidthPixels),
					Height:  int(op.HeightPixels),
				}
			}
			sc.Charts = append(sc.Charts, ref)
		}
		inv.Sheets = append(inv.Sheets, sc)
	}
	return inv
}

// Submit sends one request as a single-request batchUpdate.
func (c *Client) Submit(ctx context.Context, req models.Request) error {
	r, err := toSheetsRequest(req)
	if err != nil {
		return err
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{r},
	}).Context(ctx).Do()
	return err
}

// SheetID returns the id of the sheet titled name.
func (c *Client) SheetID(ctx context.Context, name string) (int64, error) {
	id, ok, err := c.lookupSheet(ctx, name)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q", parser.ErrSheetNotFound, name)
	}
	return id, nil
}

// EnsureSheet returns the id of the sheet titled name, adding it when absent.
func (c *Client) EnsureSheet(ctx context.Context, name string) (int64, error) {
	id, ok, err := c.lookupSheet(ctx, name)
	if err != nil || ok {
		return id, err
	}

	resp, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{Properties: &sheets.SheetProperties{Title: name}},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("add sheet %q: %w", name, err)
	}
	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("add sheet %q: empty reply", name)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

func (c *Client) lookupSheet(ctx context.Context, name string) (int64, bool, error) {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields(googleapi.Field(propertiesFields)).
		Context(ctx).
		Do()
	if err != nil {
		return 0, false, fmt.Errorf("get spreadsheet %s: %w", c.spreadsheetID, err)
	}
	for _, sh := range ss.Sheets {
		if sh != nil && sh.Properties != nil && sh.Properties.Title == name {
			return sh.Properties.SheetId, true, nil
		}
	}
	return 0, false, nil
}

// ApplyUpdates writes normalized cells as if typed by a user, so numbers and
// dates are parsed by the service.
func (c *Client) ApplyUpdates(ctx context.Context, sheetName string, updates []parser.CellUpdate) error {
	if len(updates) == 0 {
		return nil
	}
	data := make([]*sheets.ValueRange, 0, len(updates))
	for _, u := range updates {
		cell, err := parser.FormatCell(u.Row, u.Col)
		if err != nil {
			return err
		}
		data = append(data, &sheets.ValueRange{
			Range:  parser.QuoteSheetName(sheetName) + "!" + cell,
			Values: [][]interface{}{{u.New}},
		})
	}
	_, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write %d cells to %q: %w", len(updates), sheetName, err)
	}
	return nil
}

// Sheet returns the grid source of the sheet titled name.
func (c *Client) Sheet(ctx context.Context, name string) (*Sheet, error) {
	id, err := c.SheetID(ctx, name)
	if err != nil {
		return nil, err
	}
	return &Sheet{client: c, name: name, id: id}, nil
}

// Sheet is one remote worksheet used as a grid source.
type Sheet struct {
	client *Client
	name   string
	id     int64
}

// Name returns the sheet title.
func (s *Sheet) Name() string {
	return s.name
}

// SheetID returns the remote sheet id.
func (s *Sheet) SheetID() int64 {
	return s.id
}

// Rows reads the formatted values of the whole sheet.
func (s *Sheet) Rows(ctx context.Context) (models.Grid, error) {
	vr, err := s.client.svc.Spreadsheets.Values.Get(s.client.spreadsheetID, parser.QuoteSheetName(s.name)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read values of %q: %w", s.name, err)
	}
	return gridOf(vr.Values), nil
}

func gridOf(values [][]interface{}) models.Grid {
	grid := make(models.Grid, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			if v == nil {
				continue
			}
			cells[j] = strings.TrimRight(fmt.Sprint(v), "\r\n")
		}
		grid[i] = cells
	}
	return grid
}

package output

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// FileBackend is a chart backend that records requests in a batch file and
// keeps created charts in an inventory file, so a repeated run updates the
// charts it created before.
type FileBackend struct {
	inventoryPath string
	batchPath     string
	pretty        bool

	mu     sync.Mutex
	inv    models.Inventory
	batch  models.BatchUpdate
	nextID int64
}

// OpenFileBackend loads the inventory at inventoryPath. A missing file is an
// empty inventory.
func OpenFileBackend(inventoryPath, batchPath string, pretty bool) (*FileBackend, error) {
	b := &FileBackend{
		inventoryPath: inventoryPath,
		batchPath:     batchPath,
		pretty:        pretty,
		batch:         models.BatchUpdate{Requests: []models.Request{}},
	}

	data, err := os.ReadFile(inventoryPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read inventory: %w", err)
	default:
		if err := json.Unmarshal(data, &b.inv); err != nil {
			return nil, fmt.Errorf("decode inventory %s: %w", inventoryPath, err)
		}
	}

	for _, s := range b.inv.Sheets {
		for _, c := range s.Charts {
			if c.ID > b.nextID {
				b.nextID = c.ID
			}
		}
	}
	return b, nil
}

// ListCharts returns the recorded inventory.
func (b *FileBackend) ListCharts(ctx context.Context) (models.Inventory, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return copyInventory(b.inv), nil
}

// Submit appends req to the pending batch. A create request is recorded in
// the inventory under a new chart id.
func (b *FileBackend) Submit(ctx context.Context, req models.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	spec := req.Spec()
	if spec == nil {
		return errors.New("empty request")
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if req.UpdateChartSpec != nil && !b.hasChart(req.UpdateChartSpec.ChartID) {
		return fmt.Errorf("chart %d not found", req.UpdateChartSpec.ChartID)
	}

	b.batch.Requests = append(b.batch.Requests, req)

	if req.AddChart != nil {
		b.nextID++
		pos := req.AddChart.Chart.Position.OverlayPosition
		ref := models.ChartRef{ID: b.nextID, Title: spec.Title}
		var sheetID int64
		if pos != nil {
			sheetID = pos.AnchorCell.SheetID
			ref.Anchor = &models.Placement{
				SheetID: sheetID,
				Row:     pos.AnchorCell.RowIndex,
				Col:     pos.AnchorCell.ColumnIndex,
				OffsetX: pos.OffsetXPixels,
				OffsetY: pos.OffsetYPixels,
				Width:   pos.WidthPixels,
				Height:  pos.HeightPixels,
			}
		}
		b.addChart(sheetID, ref)
	}
	return nil
}

// Pending returns the requests submitted since the backend was opened.
func (b *FileBackend) Pending() models.BatchUpdate {
	b.mu.Lock()
	defer b.mu.Unlock()
	return models.BatchUpdate{Requests: append([]models.Request{}, b.batch.Requests...)}
}

// Flush writes the batch body and the inventory. An empty batch path skips
// the batch file.
func (b *FileBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.batchPath != "" {
		data, err := ToJSON(&b.batch, b.pretty)
		if err != nil {
			return fmt.Errorf("encode batch: %w", err)
		}
		if err := os.WriteFile(b.batchPath, data, 0644); err != nil {
			return fmt.Errorf("write batch: %w", err)
		}
	}

	data, err := InventoryToJSON(&b.inv, b.pretty)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	if err := os.WriteFile(b.inventoryPath, data, 0644); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	return nil
}

func (b *FileBackend) hasChart(id int64) bool {
	for _, s := range b.inv.Sheets {
		for _, c := range s.Charts {
			if c.ID == id {
				return true
			}
		}
	}
	return false
}

func (b *FileBackend) addChart(sheetID int64, ref models.ChartRef) {
	for i := range b.inv.Sheets {
		if b.inv.Sheets[i].SheetID == sheetID {
			b.inv.Sheets[i].Charts = append(b.inv.Sheets[i].Charts, ref)
			return
		}
	}
	b.inv.Sheets = append(b.inv.Sheets, models.SheetCharts{
		SheetID: sheetID,
		Charts:  []models.ChartRef{ref},
	})
}

func copyInventory(inv models.Inventory) models.Inventory {
	out := models.Inventory{Sheets: make([]models.SheetCharts, len(inv.Sheets))}
	for i, s := range inv.Sheets {
		s.Charts = append([]models.ChartRef(nil), s.Charts...)
		out.Sheets[i] = s
	}
	return out
}

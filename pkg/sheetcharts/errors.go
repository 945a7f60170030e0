package sheetcharts

import (
	"errors"
	"fmt"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/builder"
	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/parser"
)

// ErrNoData indicates the source grid has no valid data row.
var ErrNoData = parser.ErrNoData

// ErrInvalidArgument indicates a descriptor or option the builder rejects.
var ErrInvalidArgument = builder.ErrInvalidArgument

// ErrSheetNotFound indicates a missing source or target sheet.
var ErrSheetNotFound = parser.ErrSheetNotFound

// ErrUnsupportedFormat indicates a source file that is not xlsx, xls or csv.
var ErrUnsupportedFormat = errors.New("unsupported source format")

// SyncError represents an error during a chart sync.
type SyncError struct {
	Chart string
	Stage string // "read", "locate", "reconcile"
	Err   error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error for chart %q (%s): %v", e.Chart, e.Stage, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// NewSyncError creates a new SyncError.
func NewSyncError(chart, stage string, err error) *SyncError {
	return &SyncError{
		Chart: chart,
		Stage: stage,
		Err:   err,
	}
}

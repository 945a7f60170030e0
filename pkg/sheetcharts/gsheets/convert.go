package gsheets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
	"google.golang.org/api/sheets/v4"
)

// toSheetsRequest converts a chart request to the client library type. The
// wire names already match, so the request goes through JSON. Zero values
// the client library would omit are forced onto the wire.
func toSheetsRequest(req models.Request) (*sheets.Request, error) {
	if (req.AddChart == nil) == (req.UpdateChartSpec == nil) {
		return nil, errors.New("request must carry exactly one of addChart and updateChartSpec")
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	var out sheets.Request
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode request: %w", err)
	}

	var spec *sheets.ChartSpec
	switch {
	case out.AddChart != nil && out.AddChart.Chart != nil:
		spec = out.AddChart.Chart.Spec
		if pos := out.AddChart.Chart.Position; pos != nil && pos.OverlayPosition != nil && pos.OverlayPosition.AnchorCell != nil {
			pos.OverlayPosition.AnchorCell.ForceSendFields = []string{"SheetId", "RowIndex", "ColumnIndex"}
		}
	case out.UpdateChartSpec != nil:
		out.UpdateChartSpec.ForceSendFields = []string{"ChartId"}
		spec = out.UpdateChartSpec.Spec
	}
	forceSpecFields(spec)
	return &out, nil
}

func forceSpecFields(spec *sheets.ChartSpec) {
	if spec == nil || spec.BasicChart == nil {
		return
	}
	bc := spec.BasicChart
	bc.ForceSendFields = append(bc.ForceSendFields, "LineSmoothing")
	for _, axis := range bc.Axis {
		if axis != nil && axis.ViewWindowOptions != nil {
			axis.ViewWindowOptions.ForceSendFields = []string{"ViewWindowMin", "ViewWindowMax"}
		}
	}
	for _, d := range bc.Domains {
		if d != nil && d.Domain != nil {
			forceRangeFields(d.Domain.SourceRange)
		}
	}
	for _, s := range bc.Series {
		if s != nil && s.Series != nil {
			forceRangeFields(s.Series.SourceRange)
		}
	}
}

func forceRangeFields(sr *sheets.ChartSourceRange) {
	if sr == nil {
		return
	}
	for _, g := range sr.Sources {
		if g != nil {
			g.ForceSendFields = []string{"SheetId", "StartRowIndex", "EndRowIndex", "StartColumnIndex", "EndColumnIndex"}
		}
	}
}

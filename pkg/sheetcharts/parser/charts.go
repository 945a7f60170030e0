package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"path"
	"strconv"
	"strings"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/models"
)

// ChartKindMap maps OOXML plot elements to chart kinds.
var ChartKindMap = map[string]models.ChartKind{
	"lineChart":    models.ChartLine,
	"line3DChart":  models.ChartLine,
	"barChart":     models.ChartBar,
	"bar3DChart":   models.ChartBar,
	"areaChart":    models.ChartArea,
	"area3DChart":  models.ChartArea,
	"scatterChart": models.ChartScatter,
}

// WorkbookChart is a chart embedded in an xlsx workbook.
type WorkbookChart struct {
	// ID is taken from the chart part name (xl/charts/chart3.xml has ID 3).
	ID int64
	// SheetName is the sheet the chart is drawn on.
	SheetName string
	// SheetID is the workbook sheetId of that sheet.
	SheetID int64
	// Title is the chart title text.
	Title string
	// Kind is the plot type, empty when unknown.
	Kind models.ChartKind
	// Anchor is the top-left anchor cell with pixel offsets.
	Anchor models.Placement
	// XRange and YRange are the first series' category and value references.
	XRange string
	YRange string
	// Window is the value axis min/max when both are fixed.
	Window *models.AxisWindow
}

// chartAnchor holds a chart reference found in a drawing part.
type chartAnchor struct {
	rID    string
	anchor models.Placement
}

// ExtractCharts lists the charts of every sheet in an xlsx file, in sheet order.
func ExtractCharts(xlsxPath string) ([]WorkbookChart, error) {
	r, err := zip.OpenReader(xlsxPath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return extractCharts(&r.Reader)
}

// ExtractChartsFromBytes is ExtractCharts over an in-memory xlsx package.
func ExtractChartsFromBytes(data []byte) ([]WorkbookChart, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return extractCharts(r)
}

func extractCharts(r *zip.Reader) ([]WorkbookChart, error) {
	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return nil, err
	}
	sheets := parseWorkbookSheets(workbookXML)

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return nil, err
	}
	sheetFiles := parseWorkbookRels(wbRelsXML)

	var result []WorkbookChart
	for _, ws := range sheets {
		sheetPath, ok := sheetFiles[ws.rID]
		if !ok {
			continue
		}

		sheetRelsXML, err := readZipFile(r, relsPathFor(sheetPath))
		if err != nil || sheetRelsXML == nil {
			continue
		}
		drawingPath := findDrawingRelationship(sheetRelsXML)
		if drawingPath == "" {
			continue
		}
		drawingFullPath := resolveRelativePath(drawingPath, "xl/drawings")

		charts := chartsFromDrawing(r, drawingFullPath)
		for i := range charts {
			charts[i].SheetName = ws.name
			charts[i].SheetID = ws.sheetID
			charts[i].Anchor.SheetID = ws.sheetID
		}
		result = append(result, charts...)
	}

	return result, nil
}

// chartsFromDrawing resolves and parses every chart referenced by a drawing part.
func chartsFromDrawing(r *zip.Reader, drawingPath string) []WorkbookChart {
	drawingXML, err := readZipFile(r, drawingPath)
	if err != nil || drawingXML == nil {
		return nil
	}
	anchors := parseDrawingForCharts(drawingXML)
	if len(anchors) == 0 {
		return nil
	}

	relsXML, err := readZipFile(r, relsPathFor(drawingPath))
	if err != nil || relsXML == nil {
		return nil
	}
	chartPaths := parseDrawingRels(relsXML)

	var result []WorkbookChart
	for _, a := range anchors {
		target, ok := chartPaths[a.rID]
		if !ok {
			continue
		}
		chartPath := resolveRelativePath(target, "xl/charts")
		chartXML, err := readZipFile(r, chartPath)
		if err != nil || chartXML == nil {
			continue
		}
		chart := parseChartXML(chartXML)
		chart.ID = chartPartNumber(chartPath)
		chart.Anchor = a.anchor
		result = append(result, chart)
	}
	return result
}

// InventoryOf groups workbook charts by sheet, preserving order.
func InventoryOf(charts []WorkbookChart) models.Inventory {
	var inv models.Inventory
	index := make(map[int64]int)
	for _, c := range charts {
		i, ok := index[c.SheetID]
		if !ok {
			i = len(inv.Sheets)
			index[c.SheetID] = i
			inv.Sheets = append(inv.Sheets, models.SheetCharts{SheetID: c.SheetID, Title: c.SheetName})
		}
		anchor := c.Anchor
		inv.Sheets[i].Charts = append(inv.Sheets[i].Charts, models.ChartRef{ID: c.ID, Title: c.Title, Anchor: &anchor})
	}
	return inv
}

// chartPartNumber extracts N from xl/charts/chartN.xml, or 0.
func chartPartNumber(partPath string) int64 {
	base := strings.TrimSuffix(path.Base(partPath), ".xml")
	n, err := strconv.ParseInt(strings.TrimPrefix(base, "chart"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseDrawingForCharts returns the chart anchors of a drawing in document order.
func parseDrawingForCharts(data []byte) []chartAnchor {
	var result []chartAnchor
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && (se.Name.Local == "twoCellAnchor" || se.Name.Local == "oneCellAnchor") {
			if a, ok := parseAnchor(decoder); ok {
				result = append(result, a)
			}
		}
	}

	return result
}

// parseAnchor parses a cell anchor holding a graphicFrame with a chart.
func parseAnchor(decoder *xml.Decoder) (chartAnchor, bool) {
	var a chartAnchor
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "from":
				parseAnchorFrom(decoder, &a.anchor)
				depth--
			case "ext":
				for _, attr := range t.Attr {
					v, err := strconv.ParseInt(attr.Value, 10, 64)
					if err != nil || v <= 0 {
						continue
					}
					switch attr.Name.Local {
					case "cx":
						a.anchor.Width = EMUToPixels(v)
					case "cy":
						a.anchor.Height = EMUToPixels(v)
					}
				}
			case "chart":
				for _, attr := range t.Attr {
					if attr.Name.Local == "id" {
						a.rID = attr.Value
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return a, a.rID != ""
}

// parseAnchorFrom reads the col/row/offset children of an xdr:from element.
func parseAnchorFrom(decoder *xml.Decoder, p *models.Placement) {
	depth := 1
	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			txt, err := readElementText(decoder)
			if err != nil {
				return
			}
			v, err := strconv.ParseInt(strings.TrimSpace(txt), 10, 64)
			if err != nil {
				continue
			}
			switch t.Name.Local {
			case "col":
				p.Col = int(v)
			case "row":
				p.Row = int(v)
			case "colOff":
				p.OffsetX = EMUToPixels(v)
			case "rowOff":
				p.OffsetY = EMUToPixels(v)
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseDrawingRels parses drawing rels to get chart paths.
func parseDrawingRels(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target, relType string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				case "Type":
					relType = attr.Value
				}
			}
			if strings.HasSuffix(strings.ToLower(relType), "/chart") {
				result[rID] = target
			}
		}
	}

	return result
}

// parseChartXML parses a chart part.
func parseChartXML(data []byte) WorkbookChart {
	var chart WorkbookChart
	decoder := xml.NewDecoder(strings.NewReader(string(data)))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "chart" {
			parseChartElement(decoder, &chart)
		}
	}

	return chart
}

// parseChartElement parses the c:chart element.
func parseChartElement(decoder *xml.Decoder, chart *WorkbookChart) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "title":
				chart.Title = parseChartTitle(decoder)
				depth--
			case "plotArea":
				parsePlotArea(decoder, chart)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseChartTitle joins the text runs of a title element.
func parseChartTitle(decoder *xml.Decoder) string {
	var title strings.Builder
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local == "t" {
				if txt, err := readElementText(decoder); err == nil {
					title.WriteString(txt)
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.TrimSpace(title.String())
}

// parsePlotArea reads the plot type, the first series and the value axis.
func parsePlotArea(decoder *xml.Decoder, chart *WorkbookChart) {
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if kind, ok := ChartKindMap[t.Name.Local]; ok {
				if chart.Kind == "" {
					chart.Kind = kind
				}
			} else if t.Name.Local == "ser" && chart.XRange == "" && chart.YRange == "" {
				chart.XRange, chart.YRange = parseSeriesRanges(decoder)
				depth--
			} else if t.Name.Local == "valAx" {
				if w := parseValueAxis(decoder); w != nil {
					chart.Window = w
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}
}

// parseSeriesRanges reads the category and value formulas of a c:ser element.
func parseSeriesRanges(decoder *xml.Decoder) (xRange, yRange string) {
	depth := 1
	var section string

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch t.Name.Local {
			case "cat", "xVal":
				section = "x"
			case "val", "yVal":
				section = "y"
			case "tx":
				section = ""
			case "f":
				txt, err := readElementText(decoder)
				depth--
				if err != nil {
					continue
				}
				switch section {
				case "x":
					xRange = strings.TrimSpace(txt)
				case "y":
					yRange = strings.TrimSpace(txt)
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// parseValueAxis returns the fixed min/max of a c:valAx element.
func parseValueAxis(decoder *xml.Decoder) *models.AxisWindow {
	var lo, hi *float64
	depth := 1

	for depth > 0 {
		token, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if t.Name.Local != "min" && t.Name.Local != "max" {
				continue
			}
			for _, attr := range t.Attr {
				if attr.Name.Local != "val" {
					continue
				}
				if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
					if t.Name.Local == "min" {
						lo = &v
					} else {
						hi = &v
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}

	if lo != nil && hi != nil {
		return &models.AxisWindow{Min: *lo, Max: *hi}
	}
	return nil
}

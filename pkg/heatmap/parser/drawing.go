package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/rules"
)

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
const EMUPerPixel = 9525

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) float64 {
	return float64(emu) / EMUPerPixel
}

// ShapeTypes maps OOXML preset geometry names to floor-plan shape types.
// Presets not listed here are treated as polygons.
var ShapeTypes = map[string]string{
	"rect":      "rectangle",
	"roundRect": "rectangle",
	"snip1Rect": "rectangle",
	"snip2Rect": "rectangle",
	"ellipse":   "oval",
}

// sheetRef is a worksheet in workbook order.
type sheetRef struct {
	name string
	rID  string
}

// drawingShape holds intermediate parsing results.
type drawingShape struct {
	excelID     string
	name        string
	prst        string
	left, top   float64
	width       float64
	height      float64
	fill        string
	isConnector bool
}

// ReadDrawing reads the shapes drawn on a worksheet as floor-plan shapes.
// An empty sheet selects the first sheet that has a drawing. Connectors and
// lines are skipped. Coordinates are [left, top, right, bottom] in pixels.
func ReadDrawing(path, sheet string) ([]models.Shape, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, NewReadError(path, sheet, err)
	}
	defer r.Close()

	drawings, order := getSheetDrawingMap(&r.Reader)
	if sheet == "" {
		for _, name := range order {
			if _, ok := drawings[name]; ok {
				sheet = name
				break
			}
		}
	}
	drawingPath, ok := drawings[sheet]
	if !ok {
		return nil, NewReadError(path, sheet, fmt.Errorf("no drawing found"))
	}

	data, err := readZipFile(&r.Reader, drawingPath)
	if err != nil {
		return nil, NewReadError(path, sheet, err)
	}
	return toShapes(parseDrawingXML(data)), nil
}

// getSheetDrawingMap maps sheet names to their drawing XML paths. order
// lists every sheet in workbook order.
func getSheetDrawingMap(r *zip.Reader) (map[string]string, []string) {
	result := make(map[string]string)

	workbookXML, err := readZipFile(r, "xl/workbook.xml")
	if err != nil || workbookXML == nil {
		return result, nil
	}
	sheets := parseWorkbookSheets(workbookXML)

	wbRelsXML, err := readZipFile(r, "xl/_rels/workbook.xml.rels")
	if err != nil || wbRelsXML == nil {
		return result, nil
	}
	sheetFiles := parseWorkbookRels(wbRelsXML, sheets)

	order := make([]string, 0, len(sheets))
	for _, s := range sheets {
		order = append(order, s.name)
		sheetPath, ok := sheetFiles[s.name]
		if !ok {
			continue
		}
		relsPath := strings.Replace(sheetPath, "worksheets/", "worksheets/_rels/", 1)
		relsPath = strings.Replace(relsPath, ".xml", ".xml.rels", 1)

		sheetRelsXML, err := readZipFile(r, relsPath)
		if err != nil || sheetRelsXML == nil {
			continue
		}
		if target := findDrawingRelationship(sheetRelsXML); target != "" {
			result[s.name] = resolveRelativePath(target, "xl/drawings")
		}
	}
	return result, order
}

// parseDrawingXML collects every sp and cxnSp element of a drawing,
// including those nested in groups.
func parseDrawingXML(data []byte) []drawingShape {
	var results []drawingShape

	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "sp":
			results = append(results, parseShapeElement(decoder, false))
		case "cxnSp":
			results = append(results, parseShapeElement(decoder, true))
		}
	}
	return results
}

// parseShapeElement reads one shape up to its end element.
func parseShapeElement(decoder *xml.Decoder, isCxnSp bool) drawingShape {
	ds := drawingShape{isConnector: isCxnSp}
	var path []string

	for {
		token, err := decoder.Token()
		if err != nil {
			return ds
		}

		switch t := token.(type) {
		case xml.StartElement:
			parent := ""
			if len(path) > 0 {
				parent = path[len(path)-1]
			}
			switch t.Name.Local {
			case "cNvPr":
				ds.excelID = attr(t, "id")
				ds.name = attr(t, "name")
			case "prstGeom":
				ds.prst = attr(t, "prst")
			case "off":
				if parent == "xfrm" {
					ds.left = emuAttr(t, "x")
					ds.top = emuAttr(t, "y")
				}
			case "ext":
				if parent == "xfrm" {
					ds.width = emuAttr(t, "cx")
					ds.height = emuAttr(t, "cy")
				}
			case "srgbClr":
				// Only the shape fill; line and text colors live elsewhere.
				if len(path) >= 2 && parent == "solidFill" && path[len(path)-2] == "spPr" {
					ds.fill = attr(t, "val")
				}
			case "ln", "txBody", "style":
				if err := decoder.Skip(); err != nil {
					return ds
				}
				continue
			}
			path = append(path, t.Name.Local)
		case xml.EndElement:
			if len(path) == 0 {
				return ds
			}
			path = path[:len(path)-1]
		}
	}
}

// toShapes converts parsed drawing shapes to floor-plan shapes.
func toShapes(parsed []drawingShape) []models.Shape {
	shapes := make([]models.Shape, 0, len(parsed))
	for i, ds := range parsed {
		if ds.isConnector || isConnectorShape(ds.prst) {
			continue
		}

		id := "shape-" + ds.excelID
		if ds.excelID == "" {
			id = "shape-" + strconv.Itoa(i+1)
		}
		name := ds.name
		if name == "" {
			name = id
		}
		color, err := rules.NormalizeColor(ds.fill)
		if err != nil {
			color = ""
		}

		shapes = append(shapes, models.Shape{
			ID:          id,
			Name:        name,
			Type:        shapeType(ds),
			Coordinates: []float64{ds.left, ds.top, ds.left + ds.width, ds.top + ds.height},
			Color:       color,
		})
	}
	return shapes
}

func shapeType(ds drawingShape) string {
	t, ok := ShapeTypes[ds.prst]
	switch {
	case !ok && ds.prst == "":
		return "rectangle"
	case !ok:
		return "polygon"
	case t == "oval" && ds.width == ds.height:
		return "circle"
	default:
		return t
	}
}

// isConnectorShape checks if a preset is a connector or line.
func isConnectorShape(prst string) bool {
	p := strings.ToLower(prst)
	return strings.Contains(p, "connector") || p == "line"
}

func attr(se xml.StartElement, name string) string {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func emuAttr(se xml.StartElement, name string) float64 {
	v, err := strconv.ParseInt(attr(se, name), 10, 64)
	if err != nil {
		return 0
	}
	return EMUToPixels(v)
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return baseDir + "/" + target
}

func parseWorkbookSheets(data []byte) []sheetRef {
	var result []sheetRef
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			name, rID := attr(se, "name"), attr(se, "id")
			if name != "" && rID != "" {
				result = append(result, sheetRef{name: name, rID: rID})
			}
		}
	}
	return result
}

func parseWorkbookRels(data []byte, sheets []sheetRef) map[string]string {
	byID := make(map[string]string, len(sheets))
	for _, s := range sheets {
		byID[s.rID] = s.name
	}

	result := make(map[string]string) // sheet name -> file path
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			rID, target := attr(se, "Id"), attr(se, "Target")
			if sheetName, ok := byID[rID]; ok && strings.Contains(strings.ToLower(target), "worksheet") {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}
	return result
}

func findDrawingRelationship(data []byte) string {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			if strings.HasSuffix(strings.ToLower(attr(se, "Type")), "/drawing") {
				return attr(se, "Target")
			}
		}
	}
	return ""
}

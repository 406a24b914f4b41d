package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Area represents cell coordinate bounds (1-based, inclusive).
type Area struct {
	R1 int
	C1 int
	R2 int
	C2 int
}

// String renders the area in A1 notation.
func (a Area) String() string {
	start, _ := excelize.CoordinatesToCellName(a.C1, a.R1)
	end, _ := excelize.CoordinatesToCellName(a.C2, a.R2)
	return start + ":" + end
}

// ParseRange parses a range string like $A$1:$D$10 or A1:D10. An optional
// sheet prefix ('Sheet 1'!A1:D10) is returned separately.
func ParseRange(ref string) (string, Area, error) {
	ref = strings.TrimSpace(ref)
	var sheet string
	if idx := strings.LastIndex(ref, "!"); idx >= 0 {
		sheet = strings.Trim(ref[:idx], "'")
		ref = ref[idx+1:]
	}

	ref = strings.ReplaceAll(ref, "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) != 2 {
		return "", Area{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return "", Area{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return "", Area{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	if endRow < startRow {
		startRow, endRow = endRow, startRow
	}
	if endCol < startCol {
		startCol, endCol = endCol, startCol
	}

	return sheet, Area{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}

// PrintAreas returns the print areas defined in a workbook, by sheet.
func PrintAreas(f *excelize.File) map[string][]Area {
	result := make(map[string][]Area)

	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		// Multiple areas are comma separated.
		for _, part := range strings.Split(dn.RefersTo, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			sheet, area, err := ParseRange(part)
			if err != nil {
				continue
			}
			if sheet == "" {
				sheet = dn.Scope
			}
			result[sheet] = append(result[sheet], area)
		}
	}

	return result
}

// DataBounds finds the bounding box of non-empty cells in a grid.
// ok is false when the grid has no data.
func DataBounds(rows [][]string) (Area, bool) {
	minRow, maxRow := -1, -1
	minCol, maxCol := -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	if minRow < 0 {
		return Area{}, false
	}
	return Area{R1: minRow + 1, C1: minCol + 1, R2: maxRow + 1, C2: maxCol + 1}, true
}

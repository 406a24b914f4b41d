package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/xuri/excelize/v2"
)

// TableFromGrid builds a table from a cell grid restricted to area. The
// first row of the area is the header; blank headers are named after their
// column letter and repeated headers get a numeric suffix. Rows with no
// data are skipped.
func TableFromGrid(rows [][]string, area Area, source string) (models.Table, error) {
	header := cellsInArea(rows, area.R1, area)
	if !hasData(header) {
		return models.Table{}, ErrNoHeader
	}

	columns := make([]string, len(header))
	seen := make(map[string]int)
	for i, h := range header {
		name := h
		if name == "" {
			name, _ = excelize.ColumnNumberToName(area.C1 + i)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s.%d", name, n)
		}
		columns[i] = name
	}

	table := models.Table{Source: source, Columns: columns}
	for r := area.R1 + 1; r <= area.R2; r++ {
		cells := cellsInArea(rows, r, area)
		if !hasData(cells) {
			continue
		}
		row := models.Row{R: r, C: make(map[string]string, len(cells))}
		for i, v := range cells {
			if v != "" {
				row.C[columns[i]] = v
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// cellsInArea returns the trimmed cells of sheet row r (1-based) within the
// area's columns, padded to the area width.
func cellsInArea(rows [][]string, r int, area Area) []string {
	width := area.C2 - area.C1 + 1
	out := make([]string, width)
	if r < 1 || r > len(rows) {
		return out
	}
	row := rows[r-1]
	for c := area.C1; c <= area.C2 && c <= len(row); c++ {
		out[c-area.C1] = strings.TrimSpace(row[c-1])
	}
	return out
}

func hasData(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return true
		}
	}
	return false
}

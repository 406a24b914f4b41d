// Package parser reads spreadsheet files into tables for import.
package parser

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/xuri/excelize/v2"
)

// Options configures which cells of a file become the table.
type Options struct {
	// Sheet selects the worksheet; empty means the first sheet.
	Sheet string
	// Range restricts the table to an A1 range. It overrides print areas.
	Range string
	// IgnorePrintArea disables restriction to the sheet's print area.
	IgnorePrintArea bool
}

// ReadFile reads an .xlsx/.xlsm or .csv file.
func ReadFile(path string, opts Options) (models.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return models.Table{}, NewReadError(path, "", ErrFileNotFound)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return ReadWorkbook(path, opts)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return models.Table{}, NewReadError(path, "", err)
		}
		defer f.Close()
		return ReadCSV(f, filepath.Base(path), opts)
	default:
		return models.Table{}, NewReadError(path, "", ErrUnsupportedFormat)
	}
}

// ReadWorkbook reads one sheet of an xlsx workbook. The table area is, in
// order of preference: opts.Range, the sheet's first print area, the
// bounds of its non-empty cells.
func ReadWorkbook(path string, opts Options) (models.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return models.Table{}, NewReadError(path, "", err)
	}
	defer f.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return models.Table{}, NewReadError(path, "", ErrNoHeader)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return models.Table{}, NewReadError(path, sheet, err)
	}

	area, err := pickArea(f, sheet, rows, opts)
	if err != nil {
		return models.Table{}, NewReadError(path, sheet, err)
	}

	table, err := TableFromGrid(rows, area, filepath.Base(path)+"!"+sheet)
	if err != nil {
		return models.Table{}, NewReadError(path, sheet, err)
	}
	return table, nil
}

// ReadCSV reads a CSV stream. Rows may have differing lengths.
func ReadCSV(r io.Reader, source string, opts Options) (models.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return models.Table{}, NewReadError(source, "", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	area, err := pickArea(nil, "", rows, opts)
	if err != nil {
		return models.Table{}, NewReadError(source, "", err)
	}
	table, err := TableFromGrid(rows, area, source)
	if err != nil {
		return models.Table{}, NewReadError(source, "", err)
	}
	return table, nil
}

func pickArea(f *excelize.File, sheet string, rows [][]string, opts Options) (Area, error) {
	if opts.Range != "" {
		_, area, err := ParseRange(opts.Range)
		return area, err
	}
	if f != nil && !opts.IgnorePrintArea {
		if areas := PrintAreas(f)[sheet]; len(areas) > 0 {
			return areas[0], nil
		}
	}
	area, ok := DataBounds(rows)
	if !ok {
		return Area{}, ErrNoHeader
	}
	return area, nil
}

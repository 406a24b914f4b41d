package models

// Row represents one data row of an imported table.
type Row struct {
	// R is the source row index (1-based, as in the sheet).
	R int `json:"r"`
	// C maps column header to cell text.
	C map[string]string `json:"c"`
}

// Value returns the cell text of column as stored, or "" when the column is
// absent. The parser trims cells when it builds a Table.
func (r Row) Value(column string) string {
	if r.C == nil {
		return ""
	}
	return r.C[column]
}

// Table is a header plus data rows as handed over by the host.
type Table struct {
	// Source names where the table came from (file, sheet).
	Source string `json:"source,omitempty"`
	// Columns are the header names in sheet order.
	Columns []string `json:"columns"`
	// Rows are the data rows below the header.
	Rows []Row `json:"rows"`
}

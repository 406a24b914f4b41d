package models

// ColumnBinding maps one value column to a label line variable.
type ColumnBinding struct {
	// Column is the header of the value column.
	Column string `json:"column"`
	// Variable is a fixed variable name for every row.
	Variable string `json:"variable,omitempty"`
	// VariableColumn, when set, names the column holding the variable name
	// per row. It takes precedence over Variable.
	VariableColumn string `json:"variable_column,omitempty"`
}

// ImportPlan describes how rows become bindings.
type ImportPlan struct {
	// KeyColumn holds the shape name each row targets. Its text is line 0.
	KeyColumn string `json:"key_column"`
	// KeyVariable binds line 0 to a fixed variable.
	KeyVariable string `json:"key_variable,omitempty"`
	// KeyVariableColumn names the column holding line 0's variable per row.
	KeyVariableColumn string `json:"key_variable_column,omitempty"`
	// Columns become label lines 1..n in order.
	Columns []ColumnBinding `json:"columns"`
}

// KeyLine reports whether the plan writes label line 0.
func (p ImportPlan) KeyLine() bool {
	return p.KeyVariable != "" || p.KeyVariableColumn != ""
}

// Lines returns the label lines the plan writes, in order.
func (p ImportPlan) Lines() []int {
	lines := make([]int, 0, len(p.Columns)+1)
	if p.KeyLine() {
		lines = append(lines, 0)
	}
	for i := range p.Columns {
		lines = append(lines, i+1)
	}
	return lines
}

// RowIssue reports a row that could not be applied.
type RowIssue struct {
	// R is the source row index.
	R int `json:"r"`
	// Key is the row's key column text.
	Key string `json:"key"`
	// Reason is a short human-readable explanation.
	Reason string `json:"reason"`
}

// MappingResult summarizes an import or remap.
type MappingResult struct {
	// Bound lists the binding keys created or updated.
	Bound []BindingKey `json:"bound"`
	// Shapes lists the shapes that received at least one binding.
	Shapes []string `json:"shapes"`
	// Unmatched lists rows with no corresponding shape.
	Unmatched []RowIssue `json:"unmatched,omitempty"`
	// Repointed lists shapes whose row changed on remap.
	Repointed []string `json:"repointed,omitempty"`
	// Orphaned lists shapes whose previous row disappeared; their bindings
	// were removed.
	Orphaned []string `json:"orphaned,omitempty"`
	// Warnings carries non-fatal plan problems.
	Warnings []string `json:"warnings,omitempty"`
}

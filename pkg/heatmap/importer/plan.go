package importer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

// ErrInvalidPlan indicates an import plan that does not fit the table.
var ErrInvalidPlan = errors.New("invalid import plan")

// PairedPlan builds a plan for the "Name, Var_Name, Value1, Var1, ..."
// layout: the first column names the shape, the second holds the variable
// of the name line, and the rest are value/variable pairs. An unpaired
// trailing column is ignored and reported as a warning.
func PairedPlan(columns []string) (models.ImportPlan, []string, error) {
	if len(columns) < 2 {
		return models.ImportPlan{}, nil, fmt.Errorf("%w: need at least 2 columns (name, name variable), got %d", ErrInvalidPlan, len(columns))
	}
	plan := models.ImportPlan{
		KeyColumn:         columns[0],
		KeyVariableColumn: columns[1],
	}

	var warnings []string
	data := columns[2:]
	if len(data)%2 != 0 {
		warnings = append(warnings, fmt.Sprintf("odd number of value/variable columns (%d); column %q ignored", len(data), data[len(data)-1]))
	}
	for i := 0; i+1 < len(data); i += 2 {
		plan.Columns = append(plan.Columns, models.ColumnBinding{
			Column:         data[i],
			VariableColumn: data[i+1],
		})
	}
	return plan, warnings, nil
}

// ColumnPlan builds a plan binding each column to a fixed variable, in the
// given order.
func ColumnPlan(keyColumn string, columns, variables []string) (models.ImportPlan, error) {
	if len(columns) != len(variables) {
		return models.ImportPlan{}, fmt.Errorf("%w: %d columns but %d variables", ErrInvalidPlan, len(columns), len(variables))
	}
	plan := models.ImportPlan{KeyColumn: keyColumn}
	for i, col := range columns {
		plan.Columns = append(plan.Columns, models.ColumnBinding{Column: col, Variable: variables[i]})
	}
	return plan, nil
}

// validatePlan checks that every referenced column exists.
func validatePlan(plan models.ImportPlan, columns []string) error {
	have := make(map[string]bool, len(columns))
	for _, c := range columns {
		have[c] = true
	}
	need := func(col, role string) error {
		if col != "" && !have[col] {
			return fmt.Errorf("%w: %s column %q not in table", ErrInvalidPlan, role, col)
		}
		return nil
	}

	if plan.KeyColumn == "" {
		return fmt.Errorf("%w: key column is required", ErrInvalidPlan)
	}
	if err := need(plan.KeyColumn, "key"); err != nil {
		return err
	}
	if err := need(plan.KeyVariableColumn, "key variable"); err != nil {
		return err
	}
	for _, cb := range plan.Columns {
		if err := need(cb.Column, "value"); err != nil {
			return err
		}
		if err := need(cb.VariableColumn, "variable"); err != nil {
			return err
		}
		if cb.Variable == "" && cb.VariableColumn == "" {
			return fmt.Errorf("%w: column %q has no variable", ErrInvalidPlan, cb.Column)
		}
	}
	return nil
}

// variableName normalizes a variable cell; "None" and blanks mean unbound.
func variableName(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "none") {
		return ""
	}
	return s
}

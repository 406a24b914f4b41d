// Package importer maps tabular rows onto shapes and drives binding
// updates in bulk.
package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

// ErrNoImport indicates a remap without a previous import.
var ErrNoImport = errors.New("no previous import to remap")

// Binder is the part of the binding layer the mediator drives.
type Binder interface {
	Bind(key models.BindingKey, variable, raw string) models.ResolvedStyle
	Unbind(key models.BindingKey) (models.ResolvedStyle, bool)
}

// Shapes resolves row keys to shape ids.
type Shapes interface {
	Lookup(key string) (string, bool)
	Has(id string) bool
}

// State is the mediator's memory of the last import, kept so a remap can
// re-apply rows without selecting columns again.
type State struct {
	Table models.Table      `json:"table"`
	Plan  models.ImportPlan `json:"plan"`
	// Assignment maps shape id to source row number (Row.R).
	Assignment map[string]int `json:"assignment"`
}

// Mediator applies imports and remaps. It is not safe for concurrent use.
type Mediator struct {
	binder Binder
	logger *slog.Logger
	last   *State
}

// New creates a Mediator. A nil logger discards output.
func New(binder Binder, logger *slog.Logger) *Mediator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Mediator{binder: binder, logger: logger}
}

// State returns a copy of the last import, or nil.
func (m *Mediator) State() *State {
	if m.last == nil {
		return nil
	}
	s := *m.last
	s.Assignment = copyAssignment(m.last.Assignment)
	return &s
}

// Restore reinstates a saved import state without touching bindings.
func (m *Mediator) Restore(s *State) {
	if s == nil {
		m.last = nil
		return
	}
	c := *s
	c.Assignment = copyAssignment(s.Assignment)
	m.last = &c
}

// ImportRows binds each row to the shape named by its key column. Rows
// without a shape are reported in Unmatched; shapes without a row are left
// untouched. When several rows name the same shape the first row wins.
func (m *Mediator) ImportRows(table models.Table, plan models.ImportPlan, shapes Shapes) (models.MappingResult, error) {
	if err := validatePlan(plan, table.Columns); err != nil {
		return models.MappingResult{}, err
	}

	var result models.MappingResult
	assignment := make(map[string]int)
	owner := make(map[string]int)
	for _, row := range table.Rows {
		key := row.Value(plan.KeyColumn)
		id, ok := shapes.Lookup(key)
		if !ok {
			result.Unmatched = append(result.Unmatched, models.RowIssue{R: row.R, Key: key, Reason: "no shape with this name"})
			continue
		}
		if prev, taken := owner[id]; taken {
			result.Unmatched = append(result.Unmatched, models.RowIssue{
				R: row.R, Key: key, Reason: fmt.Sprintf("shape already mapped to row %d", prev),
			})
			continue
		}
		owner[id] = row.R
		assignment[id] = row.R
	}

	m.apply(table, plan, assignment, &result)
	m.last = &State{Table: table, Plan: plan, Assignment: assignment}
	m.report("import", result)
	return result, nil
}

// Remap re-applies the last import with a new shape to row assignment.
// Shapes that had a row before and have none now (or whose row no longer
// exists) are orphaned; shapes whose row changed are repointed. Either way
// only the lines the plan writes are removed.
func (m *Mediator) Remap(assignment map[string]int, shapes Shapes) (models.MappingResult, error) {
	if m.last == nil {
		return models.MappingResult{}, ErrNoImport
	}
	table, plan := m.last.Table, m.last.Plan
	rows := rowsByNumber(table)

	var result models.MappingResult
	next := make(map[string]int, len(assignment))
	for id, r := range assignment {
		if !shapes.Has(id) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("unknown shape %q ignored", id))
			continue
		}
		if _, ok := rows[r]; !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("shape %q assigned to missing row %d", id, r))
			continue
		}
		next[id] = r
	}
	sort.Strings(result.Warnings)

	for _, id := range sortedShapes(m.last.Assignment) {
		oldR := m.last.Assignment[id]
		newR, ok := next[id]
		switch {
		case !ok:
			m.unbindLines(id, plan)
			result.Orphaned = append(result.Orphaned, id)
		case newR != oldR:
			m.unbindLines(id, plan)
			result.Repointed = append(result.Repointed, id)
		}
	}

	used := make(map[int]bool, len(next))
	for _, r := range next {
		used[r] = true
	}
	for _, row := range table.Rows {
		if !used[row.R] {
			result.Unmatched = append(result.Unmatched, models.RowIssue{
				R: row.R, Key: row.Value(plan.KeyColumn), Reason: "row not assigned to a shape",
			})
		}
	}

	m.apply(table, plan, next, &result)
	m.last.Assignment = next
	m.report("remap", result)
	return result, nil
}

// apply binds the rows of assignment in row order.
func (m *Mediator) apply(table models.Table, plan models.ImportPlan, assignment map[string]int, result *models.MappingResult) {
	rows := rowsByNumber(table)
	ids := make([]string, 0, len(assignment))
	for id := range assignment {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := assignment[ids[i]], assignment[ids[j]]
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})

	for _, id := range ids {
		bound := m.applyRow(id, rows[assignment[id]], plan)
		if len(bound) == 0 {
			continue
		}
		result.Bound = append(result.Bound, bound...)
		result.Shapes = append(result.Shapes, id)
	}
}

// applyRow binds one row to one shape. Line 0 carries the key text when the
// plan gives it a variable, line i+1 carries plan.Columns[i]. Written lines
// without a value or variable are cleared so a re-import leaves nothing
// stale; other lines are not touched.
func (m *Mediator) applyRow(shapeID string, row models.Row, plan models.ImportPlan) []models.BindingKey {
	var bound []models.BindingKey
	set := func(line int, variable, raw string) {
		key := models.BindingKey{ShapeID: shapeID, Line: line}
		if variable == "" || raw == "" {
			m.binder.Unbind(key)
			return
		}
		m.binder.Bind(key, variable, raw)
		bound = append(bound, key)
	}

	if plan.KeyLine() {
		keyVar := plan.KeyVariable
		if plan.KeyVariableColumn != "" {
			keyVar = row.Value(plan.KeyVariableColumn)
		}
		set(0, variableName(keyVar), row.Value(plan.KeyColumn))
	}

	for i, cb := range plan.Columns {
		variable := cb.Variable
		if cb.VariableColumn != "" {
			variable = row.Value(cb.VariableColumn)
		}
		set(i+1, variableName(variable), row.Value(cb.Column))
	}
	return bound
}

func (m *Mediator) unbindLines(id string, plan models.ImportPlan) {
	for _, line := range plan.Lines() {
		m.binder.Unbind(models.BindingKey{ShapeID: id, Line: line})
	}
}

func (m *Mediator) report(op string, result models.MappingResult) {
	m.logger.Debug(op+" applied", "shapes", len(result.Shapes), "bindings", len(result.Bound))
	for _, issue := range result.Unmatched {
		m.logger.Warn(op+": unmatched row", "row", issue.R, "key", issue.Key, "reason", issue.Reason)
	}
	for _, id := range result.Orphaned {
		m.logger.Warn(op+": orphaned shape unbound", "shape", id)
	}
	for _, w := range result.Warnings {
		m.logger.Warn(op+": "+w)
	}
}

func rowsByNumber(table models.Table) map[int]models.Row {
	rows := make(map[int]models.Row, len(table.Rows))
	for _, row := range table.Rows {
		rows[row.R] = row
	}
	return rows
}

func sortedShapes(assignment map[string]int) []string {
	ids := make([]string, 0, len(assignment))
	for id := range assignment {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func copyAssignment(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

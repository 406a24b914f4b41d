// Package binding keeps label lines bound to variables and caches their
// resolved styles.
//
// Propagation is explicit: after any registry mutation the caller invokes
// OnVariableChanged (or RenameVariable) so the host decides when a visible
// recolor happens.
package binding

import (
	"fmt"
	"sort"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/evaluator"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/registry"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/rules"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/units"
)

// Variables resolves variable names. *registry.Registry implements it.
type Variables interface {
	Get(name string) (models.Variable, error)
}

// Layer owns the bindings of one project. It is not safe for concurrent use.
type Layer struct {
	vars  Variables
	eval  *evaluator.Evaluator
	units *units.Formatter

	bindings map[models.BindingKey]*models.Binding
	order    []models.BindingKey
}

// New creates an empty binding layer.
func New(vars Variables, eval *evaluator.Evaluator, formatter *units.Formatter) *Layer {
	return &Layer{
		vars:     vars,
		eval:     eval,
		units:    formatter,
		bindings: make(map[models.BindingKey]*models.Binding),
	}
}

// Len returns the number of bindings.
func (l *Layer) Len() int {
	return len(l.order)
}

// Bind creates or replaces the binding at key and evaluates it.
func (l *Layer) Bind(key models.BindingKey, variable, raw string) models.ResolvedStyle {
	b, ok := l.bindings[key]
	if !ok {
		b = &models.Binding{BindingKey: key}
		l.bindings[key] = b
		l.order = append(l.order, key)
	}
	b.Variable = variable
	b.Raw = raw
	l.recompute(b)
	return b.Style
}

// SetValue stores a new raw value on an existing binding and returns the
// recomputed style. Any raw text is accepted.
func (l *Layer) SetValue(key models.BindingKey, raw string) (models.ResolvedStyle, error) {
	b, ok := l.bindings[key]
	if !ok {
		return models.ResolvedStyle{}, fmt.Errorf("binding %s: %w", key, registry.ErrNotFound)
	}
	b.Raw = raw
	l.recompute(b)
	return b.Style, nil
}

// Get returns a copy of the binding at key.
func (l *Layer) Get(key models.BindingKey) (models.Binding, error) {
	b, ok := l.bindings[key]
	if !ok {
		return models.Binding{}, fmt.Errorf("binding %s: %w", key, registry.ErrNotFound)
	}
	return copyBinding(b), nil
}

// OnVariableChanged recomputes every binding referencing name and returns
// their keys in binding order.
func (l *Layer) OnVariableChanged(name string) []models.BindingKey {
	var changed []models.BindingKey
	for _, key := range l.order {
		b := l.bindings[key]
		if b.Variable != name {
			continue
		}
		l.recompute(b)
		changed = append(changed, key)
	}
	return changed
}

// RenameVariable points every binding on oldName at newName and recomputes
// them. Call it after the registry rename has committed.
func (l *Layer) RenameVariable(oldName, newName string) []models.BindingKey {
	for _, key := range l.order {
		if b := l.bindings[key]; b.Variable == oldName {
			b.Variable = newName
		}
	}
	return l.OnVariableChanged(newName)
}

// Unbind clears the binding at key and returns the neutral style the line
// reverts to.
func (l *Layer) Unbind(key models.BindingKey) (models.ResolvedStyle, bool) {
	if _, ok := l.bindings[key]; !ok {
		return l.eval.Neutral(""), false
	}
	l.remove(func(k models.BindingKey) bool { return k == key })
	return l.eval.Neutral(""), true
}

// RemoveShape drops every binding of a shape and returns how many went.
func (l *Layer) RemoveShape(shapeID string) int {
	return l.remove(func(k models.BindingKey) bool { return k.ShapeID == shapeID })
}

// ForShape returns a shape's bindings ordered by line.
func (l *Layer) ForShape(shapeID string) []models.Binding {
	var out []models.Binding
	for _, key := range l.order {
		if key.ShapeID == shapeID {
			out = append(out, copyBinding(l.bindings[key]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Fill returns the fill color of a shape: the color of its last line (by
// line number) whose binding matched a rule.
func (l *Layer) Fill(shapeID string) (string, bool) {
	lines := l.ForShape(shapeID)
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i].Style.Matched() {
			return lines[i].Style.Color, true
		}
	}
	return "", false
}

// ShapeIDs returns the distinct shapes with bindings, in first-bound order.
func (l *Layer) ShapeIDs() []string {
	seen := make(map[string]bool)
	var ids []string
	for _, key := range l.order {
		if !seen[key.ShapeID] {
			seen[key.ShapeID] = true
			ids = append(ids, key.ShapeID)
		}
	}
	return ids
}

// Bindings returns copies of all bindings in creation order.
func (l *Layer) Bindings() []models.Binding {
	out := make([]models.Binding, len(l.order))
	for i, key := range l.order {
		out[i] = copyBinding(l.bindings[key])
	}
	return out
}

// Unresolved returns the keys of bindings whose variable does not exist.
func (l *Layer) Unresolved() []models.BindingKey {
	var keys []models.BindingKey
	for _, key := range l.order {
		if l.bindings[key].Unresolved {
			keys = append(keys, key)
		}
	}
	return keys
}

// Restore replaces all bindings with the given records and recomputes
// their styles; cached styles in the input are ignored.
func (l *Layer) Restore(records []models.Binding) {
	l.bindings = make(map[models.BindingKey]*models.Binding, len(records))
	l.order = l.order[:0]
	for _, rec := range records {
		l.Bind(rec.BindingKey, rec.Variable, rec.Raw)
	}
}

// RecomputeAll refreshes every cached style.
func (l *Layer) RecomputeAll() {
	for _, key := range l.order {
		l.recompute(l.bindings[key])
	}
}

func (l *Layer) recompute(b *models.Binding) {
	b.Number = nil
	if n, ok := rules.ParseNumber(b.Raw); ok {
		b.Number = &n
	}

	v, err := l.vars.Get(b.Variable)
	if err != nil {
		b.Unresolved = true
		b.Style = l.eval.Neutral(b.Raw)
		return
	}
	b.Unresolved = false
	style := l.eval.Evaluate(v, b.Raw)
	style.Text = l.units.Format(b.Raw, v)
	b.Style = style
}

func (l *Layer) remove(match func(models.BindingKey) bool) int {
	kept := l.order[:0]
	removed := 0
	for _, key := range l.order {
		if match(key) {
			delete(l.bindings, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	l.order = kept
	return removed
}

func copyBinding(b *models.Binding) models.Binding {
	out := *b
	if b.Number != nil {
		n := *b.Number
		out.Number = &n
	}
	return out
}

package heatmap

import (
	"fmt"
	"log/slog"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/binding"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/evaluator"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/importer"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/registry"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/units"
)

// Engine ties the registry, binding layer and import mediator together and
// performs the propagation each registry mutation requires. All methods
// are synchronous and expect a single caller at a time.
type Engine struct {
	opts     Options
	log      *slog.Logger
	reg      *registry.Registry
	eval     *evaluator.Evaluator
	units    *units.Formatter
	layer    *binding.Layer
	mediator *importer.Mediator

	shapes []models.Shape
	index  *importer.ShapeIndex
}

// State is the plain data the host persists for a project.
type State struct {
	Conditions models.Conditions `json:"conditions"`
	Bindings   []models.Binding  `json:"bindings"`
	Import     *importer.State   `json:"import,omitempty"`
}

// New creates an Engine with an empty registry.
func New(opts Options) *Engine {
	log := opts.logger()
	reg := registry.New()
	eval := evaluator.New(opts.Fallback)
	formatter := units.New(units.WithCurrency(opts.currency()), units.WithGrouping(opts.GroupThousands))
	layer := binding.New(reg, eval, formatter)

	e := &Engine{
		opts:     opts,
		log:      log,
		reg:      reg,
		eval:     eval,
		units:    formatter,
		layer:    layer,
		mediator: importer.New(layer, log),
	}
	e.SetShapes(nil)
	return e
}

// Fallback returns the evaluator fallback in effect.
func (e *Engine) Fallback() evaluator.Fallback {
	return e.eval.Fallback()
}

// --- variables ---

// AddVariable registers a variable. Bindings already naming it (left
// unresolved by an earlier delete) are re-evaluated.
func (e *Engine) AddVariable(name string, defaults models.VariableDefaults) (models.Variable, error) {
	v, err := e.reg.Add(name, defaults)
	if err != nil {
		return models.Variable{}, err
	}
	e.propagate("add", name)
	return v, nil
}

// Variable returns a copy of the named variable or ErrNotFound.
func (e *Engine) Variable(name string) (models.Variable, error) {
	return e.reg.Get(name)
}

// Variables returns copies of all variables in registry order.
func (e *Engine) Variables() []models.Variable {
	return e.reg.Variables()
}

// RenameVariable renames a variable and repoints every binding that
// referenced the old name. Resolved styles do not change.
func (e *Engine) RenameVariable(oldName, newName string) ([]models.BindingKey, error) {
	if err := e.reg.Rename(oldName, newName); err != nil {
		return nil, err
	}
	changed := e.layer.RenameVariable(oldName, newName)
	e.log.Debug("variable renamed", "from", oldName, "to", newName, "bindings", len(changed))
	return changed, nil
}

// DeleteVariable removes a variable. Its bindings stay, unresolved, with
// the neutral style.
func (e *Engine) DeleteVariable(name string) []models.BindingKey {
	if !e.reg.Delete(name) {
		return nil
	}
	changed := e.propagate("delete", name)
	if len(changed) > 0 {
		e.log.Warn("bindings left unresolved", "variable", name, "bindings", len(changed))
	}
	return changed
}

// SetRules replaces a variable's rules and re-evaluates its bindings.
func (e *Engine) SetRules(name string, ordered []models.Rule) ([]models.BindingKey, error) {
	if err := e.reg.SetRules(name, ordered); err != nil {
		return nil, err
	}
	return e.propagate("rules", name), nil
}

// SetDefaults replaces a variable's default style and re-evaluates its bindings.
func (e *Engine) SetDefaults(name string, defaults models.VariableDefaults) ([]models.BindingKey, error) {
	if err := e.reg.SetDefaults(name, defaults); err != nil {
		return nil, err
	}
	return e.propagate("defaults", name), nil
}

// Evaluate resolves raw against the named variable without binding it.
// A missing variable yields the neutral style and an ErrNotFound error.
func (e *Engine) Evaluate(name, raw string) (models.ResolvedStyle, error) {
	v, err := e.reg.Get(name)
	if err != nil {
		return e.eval.Neutral(raw), err
	}
	style := e.eval.Evaluate(v, raw)
	style.Text = e.units.Format(raw, v)
	return style, nil
}

// Format applies the named variable's unit settings to raw. Unknown
// variables leave raw unchanged.
func (e *Engine) Format(name, raw string) string {
	v, err := e.reg.Get(name)
	if err != nil {
		return raw
	}
	return e.units.Format(raw, v)
}

// --- conditions documents ---

// ExportConditions returns the registry as a standalone document.
func (e *Engine) ExportConditions() models.Conditions {
	return e.reg.Export()
}

// ImportConditions applies a conditions document atomically and
// re-evaluates the bindings of every variable it touched.
func (e *Engine) ImportConditions(doc models.Conditions, mode registry.ImportMode) ([]models.BindingKey, error) {
	touched, err := e.reg.Import(doc, mode)
	if err != nil {
		return nil, err
	}
	var changed []models.BindingKey
	for _, name := range touched {
		changed = append(changed, e.layer.OnVariableChanged(name)...)
	}
	e.log.Debug("conditions imported", "variables", len(doc.Variables), "bindings", len(changed))
	return changed, nil
}

// --- bindings ---

// Bind assigns a variable and raw value to a label line.
func (e *Engine) Bind(key models.BindingKey, variable, raw string) models.ResolvedStyle {
	return e.layer.Bind(key, variable, raw)
}

// SetValue updates the raw value of an existing binding.
func (e *Engine) SetValue(key models.BindingKey, raw string) (models.ResolvedStyle, error) {
	return e.layer.SetValue(key, raw)
}

// Unbind clears a label line's binding and returns the neutral style.
func (e *Engine) Unbind(key models.BindingKey) models.ResolvedStyle {
	style, _ := e.layer.Unbind(key)
	return style
}

// Binding returns a copy of one binding or ErrNotFound.
func (e *Engine) Binding(key models.BindingKey) (models.Binding, error) {
	return e.layer.Get(key)
}

// Bindings returns all bindings in creation order.
func (e *Engine) Bindings() []models.Binding {
	return e.layer.Bindings()
}

// ShapeBindings returns a shape's bindings ordered by line.
func (e *Engine) ShapeBindings(shapeID string) []models.Binding {
	return e.layer.ForShape(shapeID)
}

// Unresolved lists bindings whose variable no longer exists.
func (e *Engine) Unresolved() []models.BindingKey {
	return e.layer.Unresolved()
}

// Fill returns the fill color of a shape: the last matched line's rule
// color, else the shape's own color, else the fallback color.
func (e *Engine) Fill(shapeID string) string {
	if c, ok := e.layer.Fill(shapeID); ok {
		return c
	}
	for _, s := range e.shapes {
		if s.ID == shapeID && s.Color != "" {
			return s.Color
		}
	}
	return e.eval.Fallback().Color
}

// --- shapes and import ---

// SetShapes replaces the host shapes used to match import rows.
func (e *Engine) SetShapes(shapes []models.Shape) {
	e.shapes = append([]models.Shape(nil), shapes...)
	e.index = importer.NewShapeIndex(e.shapes, e.opts.CaseSensitiveShapes)
}

// Shapes returns the host shapes known to the engine.
func (e *Engine) Shapes() []models.Shape {
	return append([]models.Shape(nil), e.shapes...)
}

// RemoveShape forgets a deleted shape and destroys its bindings.
func (e *Engine) RemoveShape(shapeID string) int {
	kept := e.shapes[:0]
	for _, s := range e.shapes {
		if s.ID != shapeID {
			kept = append(kept, s)
		}
	}
	e.SetShapes(kept)
	return e.layer.RemoveShape(shapeID)
}

// ClearShape destroys a shape's bindings but keeps the shape.
func (e *Engine) ClearShape(shapeID string) int {
	return e.layer.RemoveShape(shapeID)
}

// ImportRows binds table rows to shapes according to plan.
func (e *Engine) ImportRows(table models.Table, plan models.ImportPlan) (models.MappingResult, error) {
	return e.mediator.ImportRows(table, plan, e.index)
}

// Remap re-applies the last import with a new shape to row assignment.
func (e *Engine) Remap(assignment map[string]int) (models.MappingResult, error) {
	return e.mediator.Remap(assignment, e.index)
}

// --- persistence boundary ---

// Snapshot returns the engine state as plain data.
func (e *Engine) Snapshot() State {
	return State{
		Conditions: e.reg.Export(),
		Bindings:   e.layer.Bindings(),
		Import:     e.mediator.State(),
	}
}

// Restore replaces the engine state. On error nothing changes.
func (e *Engine) Restore(s State) error {
	if s.Conditions.Variables == nil {
		s.Conditions.Variables = []models.Variable{}
	}
	if _, err := e.reg.Import(s.Conditions, registry.Replace); err != nil {
		return fmt.Errorf("restore conditions: %w", err)
	}
	e.layer.Restore(s.Bindings)
	e.mediator.Restore(s.Import)
	return nil
}

func (e *Engine) propagate(op, name string) []models.BindingKey {
	changed := e.layer.OnVariableChanged(name)
	e.log.Debug("variable changed", "op", op, "variable", name, "bindings", len(changed))
	return changed
}

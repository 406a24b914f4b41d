// Package registry holds the named variables of a project and their
// ordered rule lists.
//
// The registry is mutated only through its methods. It does not propagate
// changes to bindings; callers follow each mutation with a binding layer
// OnVariableChanged call (the heatmap.Engine does this for them).
package registry

import (
	"fmt"
	"math"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/rules"
)

// Registry is an ordered collection of uniquely named variables.
// It is not safe for concurrent use.
type Registry struct {
	vars  []*models.Variable
	index map[string]int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Len returns the number of variables.
func (r *Registry) Len() int {
	return len(r.vars)
}

// Add creates a variable. Defaults are normalized; missing font size or
// colors are left for the evaluator fallback.
func (r *Registry) Add(name string, defaults models.VariableDefaults) (models.Variable, error) {
	if name == "" {
		return models.Variable{}, ErrEmptyName
	}
	if _, ok := r.index[name]; ok {
		return models.Variable{}, &DuplicateNameError{Name: name}
	}
	d, err := normalizeDefaults(defaults)
	if err != nil {
		return models.Variable{}, err
	}

	v := &models.Variable{Name: name, VariableDefaults: d, Rules: []models.Rule{}}
	r.index[name] = len(r.vars)
	r.vars = append(r.vars, v)
	return v.Clone(), nil
}

// Get returns a copy of the named variable or ErrNotFound.
func (r *Registry) Get(name string) (models.Variable, error) {
	v, ok := r.lookup(name)
	if !ok {
		return models.Variable{}, fmt.Errorf("variable %q: %w", name, ErrNotFound)
	}
	return v.Clone(), nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Names returns variable names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.vars))
	for i, v := range r.vars {
		names[i] = v.Name
	}
	return names
}

// Variables returns copies of all variables in registry order.
func (r *Registry) Variables() []models.Variable {
	out := make([]models.Variable, len(r.vars))
	for i, v := range r.vars {
		out[i] = v.Clone()
	}
	return out
}

// Rename changes a variable's name, keeping its position.
func (r *Registry) Rename(oldName, newName string) error {
	if newName == "" {
		return ErrEmptyName
	}
	i, ok := r.index[oldName]
	if !ok {
		return fmt.Errorf("variable %q: %w", oldName, ErrNotFound)
	}
	if oldName == newName {
		return nil
	}
	if _, taken := r.index[newName]; taken {
		return &DuplicateNameError{Name: newName}
	}

	r.vars[i].Name = newName
	delete(r.index, oldName)
	r.index[newName] = i
	return nil
}

// Delete removes a variable. Deleting an unknown name is a no-op; the
// return value reports whether anything was removed.
func (r *Registry) Delete(name string) bool {
	i, ok := r.index[name]
	if !ok {
		return false
	}
	r.vars = append(r.vars[:i], r.vars[i+1:]...)
	r.reindex()
	return true
}

// SetRules replaces the rule list of a variable atomically. Order is kept
// exactly as given.
func (r *Registry) SetRules(name string, ordered []models.Rule) error {
	v, ok := r.lookup(name)
	if !ok {
		return fmt.Errorf("variable %q: %w", name, ErrNotFound)
	}
	normalized, err := normalizeRules(ordered)
	if err != nil {
		return err
	}
	v.Rules = normalized
	return nil
}

// SetDefaults replaces the default style of a variable.
func (r *Registry) SetDefaults(name string, defaults models.VariableDefaults) error {
	v, ok := r.lookup(name)
	if !ok {
		return fmt.Errorf("variable %q: %w", name, ErrNotFound)
	}
	d, err := normalizeDefaults(defaults)
	if err != nil {
		return err
	}
	v.VariableDefaults = d
	return nil
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	out := New()
	for _, v := range r.vars {
		c := v.Clone()
		out.index[c.Name] = len(out.vars)
		out.vars = append(out.vars, &c)
	}
	return out
}

func (r *Registry) lookup(name string) (*models.Variable, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.vars[i], true
}

func (r *Registry) reindex() {
	r.index = make(map[string]int, len(r.vars))
	for i, v := range r.vars {
		r.index[v.Name] = i
	}
}

func normalizeDefaults(d models.VariableDefaults) (models.VariableDefaults, error) {
	var err error
	if d.Color, err = rules.NormalizeColor(d.Color); err != nil {
		return d, fmt.Errorf("default color: %w", err)
	}
	if d.TextColor, err = rules.NormalizeColor(d.TextColor); err != nil {
		return d, fmt.Errorf("text color: %w", err)
	}
	if d.BackgroundColor, err = rules.NormalizeColor(d.BackgroundColor); err != nil {
		return d, fmt.Errorf("background color: %w", err)
	}
	if d.FontSize < 0 {
		return d, fmt.Errorf("font size must be positive, got %d", d.FontSize)
	}
	d.Unit = NormalizeUnit(d.Unit)
	return d, nil
}

func normalizeRules(in []models.Rule) ([]models.Rule, error) {
	out := make([]models.Rule, len(in))
	for i, rule := range in {
		if !rule.Operator.Valid() {
			return nil, fmt.Errorf("rule %d: invalid operator %d", i, int(rule.Operator))
		}
		if math.IsNaN(rule.Threshold) || math.IsInf(rule.Threshold, 0) {
			return nil, fmt.Errorf("rule %d: threshold must be finite, got %v", i, rule.Threshold)
		}
		var err error
		if rule.Color, err = rules.NormalizeColor(rule.Color); err != nil {
			return nil, fmt.Errorf("rule %d: %w", i, err)
		}
		if rule.Color == "" {
			return nil, fmt.Errorf("rule %d: color is required", i)
		}
		if rule.TextColor, err = rules.NormalizeColor(rule.TextColor); err != nil {
			return nil, fmt.Errorf("rule %d: text color: %w", i, err)
		}
		if rule.BackgroundColor, err = rules.NormalizeColor(rule.BackgroundColor); err != nil {
			return nil, fmt.Errorf("rule %d: background color: %w", i, err)
		}
		out[i] = rule
	}
	return out, nil
}

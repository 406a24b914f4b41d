package models

import "fmt"

// BindingKey identifies a label text line of a shape.
type BindingKey struct {
	// ShapeID is a weak reference to a host-owned shape.
	ShapeID string `json:"shape_id"`
	// Line is the 0-based text line of the shape's label.
	Line int `json:"line"`
}

func (k BindingKey) String() string {
	return fmt.Sprintf("%s#%d", k.ShapeID, k.Line)
}

// Binding associates a label text line with a variable and a raw value.
type Binding struct {
	BindingKey
	// Variable is the bound variable name. It may be unresolved if the
	// variable was deleted.
	Variable string `json:"variable"`
	// Raw is the value exactly as entered or imported.
	Raw string `json:"raw"`
	// Number is the numeric form of Raw, nil when Raw is not numeric.
	Number *float64 `json:"number,omitempty"`
	// Style is the cached evaluator output. Derived, never authoritative.
	Style ResolvedStyle `json:"style"`
	// Unresolved is set when Variable names no registry entry.
	Unresolved bool `json:"unresolved,omitempty"`
}

package models

// VariableDefaults holds the style attributes a variable applies when no
// rule matches (and the base a matching rule's overrides are merged onto).
type VariableDefaults struct {
	// Color is the shape fill color when no rule matches. Empty leaves the
	// engine fallback color in place.
	Color string `json:"default_color,omitempty" yaml:"default_color,omitempty"`
	// TextColor is the label text color.
	TextColor string `json:"text_color" yaml:"text_color"`
	// BackgroundColor is the label background color.
	BackgroundColor string `json:"bg_color" yaml:"bg_color"`
	// FontSize is the label font size in points.
	FontSize int `json:"text_size" yaml:"text_size"`
	// AutoUnit enables the unit formatter for lines bound to this variable.
	AutoUnit bool `json:"auto_enable_sales" yaml:"auto_enable_sales"`
	// Unit is the unit symbol ("m²", "$"). Empty means no unit.
	Unit string `json:"default_unit" yaml:"default_unit"`
}

// Variable is a named, ordered rule set plus default style.
type Variable struct {
	// Name is the unique, case-sensitive identifier.
	Name string `json:"name" yaml:"name"`
	VariableDefaults `yaml:",inline"`
	// Rules are evaluated in order; the first match wins.
	Rules []Rule `json:"rules" yaml:"rules"`
}

// Clone returns a deep copy so callers cannot mutate registry state.
func (v Variable) Clone() Variable {
	out := v
	if v.Rules != nil {
		out.Rules = make([]Rule, len(v.Rules))
		copy(out.Rules, v.Rules)
	}
	return out
}

// Conditions is the standalone conditions document: the serialized
// variable registry without bindings.
type Conditions struct {
	// Version is the document format version.
	Version int `json:"version,omitempty" yaml:"version,omitempty"`
	// Variables in registry order.
	Variables []Variable `json:"variables" yaml:"variables"`
}

// ConditionsVersion is the current conditions document version.
const ConditionsVersion = 1

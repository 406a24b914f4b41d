// Package models defines data structures for the heatmap coloring engine.
package models

import "fmt"

// Operator is a comparison operator of a Rule.
type Operator int

const (
	// GT matches values strictly greater than the threshold.
	GT Operator = iota + 1
	// GE matches values greater than or equal to the threshold.
	GE
	// LT matches values strictly less than the threshold.
	LT
	// LE matches values less than or equal to the threshold.
	LE
	// EQ matches values equal to the threshold.
	EQ
	// NE matches values not equal to the threshold.
	NE
)

var operatorSymbols = map[Operator]string{
	GT: ">",
	GE: ">=",
	LT: "<",
	LE: "<=",
	EQ: "==",
	NE: "!=",
}

// Operators lists every operator in display order.
func Operators() []Operator {
	return []Operator{GT, GE, LT, LE, EQ, NE}
}

// ParseOperator parses the textual form of an operator (">", ">=", ...).
func ParseOperator(s string) (Operator, error) {
	for op, sym := range operatorSymbols {
		if sym == s {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operator %q", s)
}

// Valid reports whether op is one of the six defined operators.
func (op Operator) Valid() bool {
	_, ok := operatorSymbols[op]
	return ok
}

func (op Operator) String() string {
	if sym, ok := operatorSymbols[op]; ok {
		return sym
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// MarshalText encodes the operator as its symbol.
func (op Operator) MarshalText() ([]byte, error) {
	if !op.Valid() {
		return nil, fmt.Errorf("invalid operator %d", int(op))
	}
	return []byte(op.String()), nil
}

// UnmarshalText decodes an operator symbol.
func (op *Operator) UnmarshalText(text []byte) error {
	parsed, err := ParseOperator(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// Rule is a single comparison rule. Rules have no identity beyond their
// position in the owning Variable's rule list.
type Rule struct {
	// Operator is the comparison applied as `value <op> threshold`.
	Operator Operator `json:"operator" yaml:"operator"`
	// Threshold is the right-hand side of the comparison.
	Threshold float64 `json:"threshold" yaml:"threshold"`
	// Color is the shape fill color when the rule matches.
	Color string `json:"color" yaml:"color"`
	// TextColor overrides the variable's text color when the rule matches.
	TextColor string `json:"text_color,omitempty" yaml:"text_color,omitempty"`
	// BackgroundColor overrides the variable's label background when the rule matches.
	BackgroundColor string `json:"bg_color,omitempty" yaml:"bg_color,omitempty"`
}

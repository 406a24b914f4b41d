// Package evaluator resolves the display style of a raw value against a
// variable's rules.
//
// Rule precedence is first-match-wins by list order. A rule with a wider
// range placed before a narrower one shadows it; rules are never sorted by
// threshold or specificity.
package evaluator

import (
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/rules"
)

// Fallback holds the engine-wide style constants used when neither a rule
// nor the variable defines an attribute.
type Fallback struct {
	Color           string
	TextColor       string
	BackgroundColor string
	FontSize        int
}

// DefaultFallback returns grey fill, black text on white, 12pt.
func DefaultFallback() Fallback {
	return Fallback{
		Color:           "#cccccc",
		TextColor:       "#000000",
		BackgroundColor: "#ffffff",
		FontSize:        12,
	}
}

// Evaluator is stateless apart from its fallback configuration.
type Evaluator struct {
	fallback Fallback
}

// New creates an Evaluator. Zero fields of fb are filled from DefaultFallback.
func New(fb Fallback) *Evaluator {
	def := DefaultFallback()
	if fb.Color == "" {
		fb.Color = def.Color
	}
	if fb.TextColor == "" {
		fb.TextColor = def.TextColor
	}
	if fb.BackgroundColor == "" {
		fb.BackgroundColor = def.BackgroundColor
	}
	if fb.FontSize <= 0 {
		fb.FontSize = def.FontSize
	}
	return &Evaluator{fallback: fb}
}

// Fallback returns the evaluator's fallback configuration.
func (e *Evaluator) Fallback() Fallback {
	return e.fallback
}

// Neutral returns the unstyled style used for unbound or unresolved lines.
func (e *Evaluator) Neutral(raw string) models.ResolvedStyle {
	return models.ResolvedStyle{
		Color:           e.fallback.Color,
		TextColor:       e.fallback.TextColor,
		BackgroundColor: e.fallback.BackgroundColor,
		FontSize:        e.fallback.FontSize,
		Text:            raw,
		MatchedRule:     models.NoRule,
	}
}

// Evaluate resolves raw against v. Non-numeric raw values and values no
// rule matches get the variable's default style.
func (e *Evaluator) Evaluate(v models.Variable, raw string) models.ResolvedStyle {
	style := e.defaults(v, raw)

	value, ok := rules.ParseNumber(raw)
	if !ok {
		return style
	}
	idx := rules.First(v.Rules, value)
	if idx == models.NoRule {
		return style
	}

	rule := v.Rules[idx]
	style.MatchedRule = idx
	style.Color = rule.Color
	if rule.TextColor != "" {
		style.TextColor = rule.TextColor
	}
	if rule.BackgroundColor != "" {
		style.BackgroundColor = rule.BackgroundColor
	}
	return style
}

func (e *Evaluator) defaults(v models.Variable, raw string) models.ResolvedStyle {
	style := e.Neutral(raw)
	if v.Color != "" {
		style.Color = v.Color
	}
	if v.TextColor != "" {
		style.TextColor = v.TextColor
	}
	if v.BackgroundColor != "" {
		style.BackgroundColor = v.BackgroundColor
	}
	if v.FontSize > 0 {
		style.FontSize = v.FontSize
	}
	return style
}

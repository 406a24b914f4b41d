// Package rules implements rule matching and the value parsing it relies on.
package rules

import (
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

// Matches reports whether `value <op> threshold` holds for the raw value.
// Values that do not parse as numbers never match.
func Matches(threshold float64, op models.Operator, raw string) bool {
	value, ok := ParseNumber(raw)
	if !ok {
		return false
	}
	return Compare(threshold, op, value)
}

// Compare applies op to an already parsed value.
func Compare(threshold float64, op models.Operator, value float64) bool {
	switch op {
	case models.GT:
		return value > threshold
	case models.GE:
		return value >= threshold
	case models.LT:
		return value < threshold
	case models.LE:
		return value <= threshold
	case models.EQ:
		return value == threshold
	case models.NE:
		return value != threshold
	default:
		return false
	}
}

// First returns the index of the first rule matching value, or models.NoRule.
func First(rules []models.Rule, value float64) int {
	for i, r := range rules {
		if Compare(r.Threshold, r.Operator, value) {
			return i
		}
	}
	return models.NoRule
}

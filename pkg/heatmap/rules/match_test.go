package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		op       models.Operator
		value    float64
		expected bool
	}{
		{models.GT, 51, true},
		{models.GT, 50, false},
		{models.GE, 50, true},
		{models.GE, 49.9, false},
		{models.LT, 49, true},
		{models.LT, 50, false},
		{models.LE, 50, true},
		{models.LE, 50.1, false},
		{models.EQ, 50, true},
		{models.EQ, 50.5, false},
		{models.NE, 50.5, true},
		{models.NE, 50, false},
		{models.Operator(0), 50, false},
		{models.Operator(99), 50, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Compare(50, tt.op, tt.value), "%v %s 50", tt.value, tt.op)
	}
}

func TestMatches(t *testing.T) {
	assert.True(t, Matches(50000, models.GT, "60,000"))
	assert.True(t, Matches(100, models.LE, "$100"))
	assert.False(t, Matches(50000, models.GT, "abc"))
	assert.False(t, Matches(0, models.NE, ""), "empty text is not numeric and never matches")
}

func TestFirst(t *testing.T) {
	ordered := []models.Rule{
		{Operator: models.GT, Threshold: 10, Color: "#ff0000"},
		{Operator: models.GT, Threshold: 100, Color: "#00ff00"},
		{Operator: models.LE, Threshold: 10, Color: "#0000ff"},
	}

	// The wider rule listed first shadows the narrower one.
	assert.Equal(t, 0, First(ordered, 500))
	assert.Equal(t, 0, First(ordered, 11))
	assert.Equal(t, 2, First(ordered, 10))
	assert.Equal(t, models.NoRule, First(nil, 10))
	assert.Equal(t, models.NoRule, First(ordered[:2], 5))
}

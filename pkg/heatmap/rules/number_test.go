package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		ok       bool
	}{
		{"60000", 60000, true},
		{"  42 ", 42, true},
		{"-100", -100, true},
		{"1,234.5", 1234.5, true},
		{"$250", 250, true},
		{"-$5", -5, true},
		{"€ 1,000", 1000, true},
		{"250 m²", 250, true},
		{"12.5%", 12.5, true},
		{".5", 0.5, true},
		{"1e3", 1000, true},
		{"abc", 0, false},
		{"", 0, false},
		{"   ", 0, false},
		{"Shop 12", 0, false},
		{"1.2.3", 0, false},
		{"12 of 20", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseNumber(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.expected, got, 1e-9)
			}
		})
	}
}

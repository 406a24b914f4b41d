package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"#FF0000", "#ff0000"},
		{"#f00", "#ff0000"},
		{"00FF00", "#00ff00"},
		{"green", "#008000"},
		{"Yellow", "#ffff00"},
		{"  red ", "#ff0000"},
	}

	for _, tt := range tests {
		got, err := NormalizeColor(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.expected, got, tt.input)
	}
}

func TestNormalizeColorInvalid(t *testing.T) {
	for _, input := range []string{"not-a-color", "#12", "#gggggg"} {
		_, err := NormalizeColor(input)
		assert.Error(t, err, input)
	}
}

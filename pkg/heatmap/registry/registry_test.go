package registry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

func salesRules() []models.Rule {
	return []models.Rule{
		{Operator: models.GT, Threshold: 50000, Color: "green"},
		{Operator: models.GT, Threshold: 25000, Color: "#FFFF00"},
	}
}

func TestAdd(t *testing.T) {
	r := New()

	v, err := r.Add("Sales", models.VariableDefaults{Color: "red", FontSize: 14, AutoUnit: true, Unit: "m² (Square Meter)"})
	require.NoError(t, err)
	assert.Equal(t, "Sales", v.Name)
	assert.Equal(t, "#ff0000", v.Color)
	assert.Equal(t, "m²", v.Unit)
	assert.Empty(t, v.Rules)
	assert.Equal(t, 1, r.Len())
	assert.True(t, r.Has("Sales"))
	assert.False(t, r.Has("sales"), "names are case-sensitive")

	_, err = r.Add("", models.VariableDefaults{})
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = r.Add("Sales", models.VariableDefaults{})
	assert.ErrorIs(t, err, ErrDuplicateName)
	var dup *DuplicateNameError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "Sales", dup.Name)

	_, err = r.Add("Bad", models.VariableDefaults{Color: "nope"})
	assert.Error(t, err)
	_, err = r.Add("Bad", models.VariableDefaults{FontSize: -1})
	assert.Error(t, err)
	assert.Equal(t, 1, r.Len(), "failed adds leave the registry unchanged")
}

func TestGetReturnsCopy(t *testing.T) {
	r := New()
	_, err := r.Add("Sales", models.VariableDefaults{})
	require.NoError(t, err)
	require.NoError(t, r.SetRules("Sales", salesRules()))

	v, err := r.Get("Sales")
	require.NoError(t, err)
	v.Rules[0].Threshold = 1

	again, err := r.Get("Sales")
	require.NoError(t, err)
	assert.Equal(t, 50000.0, again.Rules[0].Threshold)

	_, err = r.Get("Missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRename(t *testing.T) {
	r := New()
	for _, name := range []string{"Sales", "Area", "Rent"} {
		_, err := r.Add(name, models.VariableDefaults{})
		require.NoError(t, err)
	}

	require.NoError(t, r.Rename("Area", "Floor Area"))
	assert.Equal(t, []string{"Sales", "Floor Area", "Rent"}, r.Names(), "rename keeps position")
	assert.False(t, r.Has("Area"))

	assert.ErrorIs(t, r.Rename("Sales", "Rent"), ErrDuplicateName)
	assert.ErrorIs(t, r.Rename("Missing", "X"), ErrNotFound)
	assert.ErrorIs(t, r.Rename("Sales", ""), ErrEmptyName)
	assert.NoError(t, r.Rename("Sales", "Sales"))
	assert.Equal(t, []string{"Sales", "Floor Area", "Rent"}, r.Names())
}

func TestDelete(t *testing.T) {
	r := New()
	for _, name := range []string{"Sales", "Area", "Rent"} {
		_, err := r.Add(name, models.VariableDefaults{})
		require.NoError(t, err)
	}

	assert.True(t, r.Delete("Area"))
	assert.False(t, r.Delete("Area"))
	assert.Equal(t, []string{"Sales", "Rent"}, r.Names())

	v, err := r.Get("Rent")
	require.NoError(t, err)
	assert.Equal(t, "Rent", v.Name)
}

func TestSetRules(t *testing.T) {
	r := New()
	_, err := r.Add("Sales", models.VariableDefaults{})
	require.NoError(t, err)

	require.NoError(t, r.SetRules("Sales", salesRules()))
	v, err := r.Get("Sales")
	require.NoError(t, err)
	require.Len(t, v.Rules, 2)
	assert.Equal(t, "#008000", v.Rules[0].Color)
	assert.Equal(t, "#ffff00", v.Rules[1].Color)

	tests := []struct {
		name string
		rule models.Rule
	}{
		{"invalid operator", models.Rule{Threshold: 1, Color: "red"}},
		{"missing color", models.Rule{Operator: models.GT, Threshold: 1}},
		{"bad color", models.Rule{Operator: models.GT, Threshold: 1, Color: "nope"}},
		{"bad text color", models.Rule{Operator: models.GT, Threshold: 1, Color: "red", TextColor: "nope"}},
		{"NaN threshold", models.Rule{Operator: models.GT, Threshold: math.NaN(), Color: "red"}},
		{"infinite threshold", models.Rule{Operator: models.LT, Threshold: math.Inf(1), Color: "red"}},
		{"negative infinite threshold", models.Rule{Operator: models.GT, Threshold: math.Inf(-1), Color: "red"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.SetRules("Sales", []models.Rule{salesRules()[0], tt.rule})
			assert.Error(t, err)
			v, _ := r.Get("Sales")
			assert.Len(t, v.Rules, 2, "rules are replaced atomically")
		})
	}

	assert.ErrorIs(t, r.SetRules("Missing", nil), ErrNotFound)
}

func TestSetDefaults(t *testing.T) {
	r := New()
	_, err := r.Add("Area", models.VariableDefaults{})
	require.NoError(t, err)

	require.NoError(t, r.SetDefaults("Area", models.VariableDefaults{AutoUnit: true, Unit: "None"}))
	v, _ := r.Get("Area")
	assert.True(t, v.AutoUnit)
	assert.Empty(t, v.Unit)

	assert.ErrorIs(t, r.SetDefaults("Missing", models.VariableDefaults{}), ErrNotFound)
}

func TestNormalizeUnit(t *testing.T) {
	tests := map[string]string{
		"m²":                "m²",
		" m² (Square Meter)": "m²",
		"$ (Dollar)":        "$",
		"None":              "",
		"none":              "",
		"":                  "",
		"kg":                "kg",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, NormalizeUnit(input), input)
	}
}

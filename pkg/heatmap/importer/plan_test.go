package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

func TestPairedPlan(t *testing.T) {
	plan, warnings, err := PairedPlan([]string{"Name", "Var_Name", "Value1", "Var1", "Value2", "Var2"})
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, "Name", plan.KeyColumn)
	assert.Equal(t, "Var_Name", plan.KeyVariableColumn)
	assert.Equal(t, []models.ColumnBinding{
		{Column: "Value1", VariableColumn: "Var1"},
		{Column: "Value2", VariableColumn: "Var2"},
	}, plan.Columns)

	plan, warnings, err = PairedPlan([]string{"Name", "Var_Name", "Value1", "Var1", "Extra"})
	require.NoError(t, err)
	assert.Len(t, plan.Columns, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `"Extra"`)

	_, _, err = PairedPlan([]string{"Name"})
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestColumnPlan(t *testing.T) {
	plan, err := ColumnPlan("Shop", []string{"Sales", "Area"}, []string{"Sales", "Area"})
	require.NoError(t, err)
	assert.Equal(t, "Shop", plan.KeyColumn)
	assert.Len(t, plan.Columns, 2)
	assert.Equal(t, "Area", plan.Columns[1].Variable)

	_, err = ColumnPlan("Shop", []string{"Sales"}, nil)
	assert.ErrorIs(t, err, ErrInvalidPlan)
}

func TestValidatePlan(t *testing.T) {
	columns := []string{"Shop", "Sales"}
	tests := []struct {
		name  string
		plan  models.ImportPlan
		valid bool
	}{
		{"ok", models.ImportPlan{KeyColumn: "Shop", Columns: []models.ColumnBinding{{Column: "Sales", Variable: "Sales"}}}, true},
		{"no key", models.ImportPlan{}, false},
		{"unknown key", models.ImportPlan{KeyColumn: "Name"}, false},
		{"unknown value column", models.ImportPlan{KeyColumn: "Shop", Columns: []models.ColumnBinding{{Column: "Area", Variable: "Area"}}}, false},
		{"no variable", models.ImportPlan{KeyColumn: "Shop", Columns: []models.ColumnBinding{{Column: "Sales"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePlan(tt.plan, columns)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidPlan)
			}
		})
	}
}

func TestShapeIndex(t *testing.T) {
	shapes := []models.Shape{
		{ID: "s1", Name: "Shop A"},
		{ID: "s2", Name: "shop a"},
		{ID: "s3"},
	}

	idx := NewShapeIndex(shapes, false)
	id, ok := idx.Lookup("  SHOP A ")
	assert.True(t, ok)
	assert.Equal(t, "s1", id, "first shape wins a name collision")
	id, ok = idx.Lookup("s3")
	assert.True(t, ok, "unnamed shapes match by id")
	assert.Equal(t, "s3", id)
	_, ok = idx.Lookup("Shop Z")
	assert.False(t, ok)
	assert.True(t, idx.Has("s2"))
	assert.False(t, idx.Has("Shop A"))

	exact := NewShapeIndex(shapes, true)
	id, ok = exact.Lookup("shop a")
	assert.True(t, ok)
	assert.Equal(t, "s2", id)
	_, ok = exact.Lookup("SHOP A")
	assert.False(t, ok)
}

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

func newSalesRegistry(t *testing.T) *Registry {
	t.Helper()
	r := New()
	_, err := r.Add("Sales", models.VariableDefaults{Color: "red", FontSize: 12})
	require.NoError(t, err)
	require.NoError(t, r.SetRules("Sales", salesRules()))
	_, err = r.Add("Area", models.VariableDefaults{AutoUnit: true, Unit: "m²"})
	require.NoError(t, err)
	return r
}

func TestConditionsRoundTrip(t *testing.T) {
	r := newSalesRegistry(t)

	for _, format := range []Format{FormatJSON, FormatYAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := Encode(r.Export(), format, true)
			require.NoError(t, err)

			doc, err := Decode(data, format)
			require.NoError(t, err)

			restored, err := FromConditions(doc)
			require.NoError(t, err)
			assert.Equal(t, r.Variables(), restored.Variables())
		})
	}
}

func TestDecodeJSONFieldNames(t *testing.T) {
	data := []byte(`{
		"variables": [{
			"name": "Sales",
			"default_color": "#ff0000",
			"text_color": "#000000",
			"bg_color": "#ffffff",
			"text_size": 12,
			"auto_enable_sales": true,
			"default_unit": "$",
			"rules": [{"operator": ">", "threshold": 50000, "color": "#00ff00"}]
		}]
	}`)

	doc, err := Decode(data, FormatJSON)
	require.NoError(t, err)
	require.Len(t, doc.Variables, 1)
	v := doc.Variables[0]
	assert.Equal(t, "#ff0000", v.Color)
	assert.Equal(t, 12, v.FontSize)
	assert.True(t, v.AutoUnit)
	assert.Equal(t, "$", v.Unit)
	require.Len(t, v.Rules, 1)
	assert.Equal(t, models.GT, v.Rules[0].Operator)
}

func TestDecodeYAML(t *testing.T) {
	data := []byte(`
version: 1
variables:
  - name: Sales
    default_color: red
    rules:
      - operator: ">"
        threshold: 50000
        color: green
      - operator: ">="
        threshold: 25000
        color: yellow
`)
	doc, err := Decode(data, FormatYAML)
	require.NoError(t, err)
	require.Len(t, doc.Variables, 1)
	assert.Equal(t, "red", doc.Variables[0].Color)
	require.Len(t, doc.Variables[0].Rules, 2)
	assert.Equal(t, models.GE, doc.Variables[0].Rules[1].Operator)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		field string
	}{
		{"syntax", `{"variables": [`, ""},
		{"missing variables", `{"version": 1}`, "variables"},
		{"future version", `{"version": 99, "variables": []}`, "version"},
		{"bad operator", `{"variables": [{"name": "X", "rules": [{"operator": "~"}]}]}`, ""},
		{"trailing data", `{"variables": []} trailing garbage`, ""},
		{"second document", `{"variables": []} {"variables": []}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), FormatJSON)
			require.Error(t, err)
			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.field, perr.Field)
		})
	}
}

func TestFromConditionsInvalid(t *testing.T) {
	doc := models.Conditions{Variables: []models.Variable{
		{Name: "Sales"},
		{Name: "Sales"},
	}}
	_, err := FromConditions(doc)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "variables[1]", perr.Field)
	assert.ErrorIs(t, err, ErrDuplicateName)

	doc = models.Conditions{Variables: []models.Variable{
		{Name: "Sales", Rules: []models.Rule{{Operator: models.GT, Threshold: 1}}},
	}}
	_, err = FromConditions(doc)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "variables[0].rules", perr.Field)
}

func TestImportReplace(t *testing.T) {
	r := newSalesRegistry(t)

	doc := models.Conditions{Variables: []models.Variable{
		{Name: "Rent", VariableDefaults: models.VariableDefaults{Color: "blue"}},
	}}
	touched, err := r.Import(doc, Replace)
	require.NoError(t, err)

	assert.Equal(t, []string{"Rent"}, r.Names())
	assert.ElementsMatch(t, []string{"Sales", "Area", "Rent"}, touched)
}

func TestImportMerge(t *testing.T) {
	r := newSalesRegistry(t)

	doc := models.Conditions{Variables: []models.Variable{
		{Name: "Rent"},
		{Name: "Sales", VariableDefaults: models.VariableDefaults{Color: "black"}},
	}}
	touched, err := r.Import(doc, Merge)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sales", "Area", "Rent"}, r.Names(), "existing names keep their position")
	assert.Equal(t, []string{"Rent", "Sales"}, touched)

	v, _ := r.Get("Sales")
	assert.Equal(t, "#000000", v.Color)
	assert.Empty(t, v.Rules, "merged variables are replaced wholesale")
}

func TestImportIsAtomic(t *testing.T) {
	r := newSalesRegistry(t)
	before := r.Variables()

	doc := models.Conditions{Variables: []models.Variable{
		{Name: "Rent"},
		{Name: "Broken", VariableDefaults: models.VariableDefaults{Color: "not-a-color"}},
	}}
	for _, mode := range []ImportMode{Replace, Merge} {
		_, err := r.Import(doc, mode)
		require.Error(t, err)
		assert.Equal(t, before, r.Variables())
	}
}

func TestImportRejectsInfiniteThreshold(t *testing.T) {
	r := newSalesRegistry(t)
	before := r.Variables()

	doc, err := Decode([]byte(`
variables:
  - name: Sales
    rules:
      - operator: ">"
        threshold: .inf
        color: green
`), FormatYAML)
	require.NoError(t, err)

	_, err = r.Import(doc, Merge)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "variables[0].rules", perr.Field)
	assert.Equal(t, before, r.Variables())

	data, err := Encode(r.Export(), FormatJSON, false)
	require.NoError(t, err)
	_, err = Decode(data, FormatJSON)
	require.NoError(t, err)
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("rules.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("RULES.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("rules.json"))
	assert.Equal(t, FormatJSON, FormatForPath("rules"))
}

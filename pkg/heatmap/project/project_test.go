package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/heatmap-go/pkg/heatmap"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
)

func TestLoadOrNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mall.json")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrNotExist)

	p, err := LoadOrNew(path)
	require.NoError(t, err)
	assert.Equal(t, "mall", p.Name)
	assert.Equal(t, FormatVersion, p.Version)
	assert.Empty(t, p.Shapes)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mall.json")

	p := New("mall")
	p.PDF = "floor1.pdf"
	p.Shapes = []models.Shape{{ID: "s1", Name: "Shop A", Type: "rectangle", Coordinates: []float64{0, 0, 10, 10}}}

	e, err := p.Open(heatmap.DefaultOptions())
	require.NoError(t, err)
	_, err = e.AddVariable("Sales", models.VariableDefaults{Color: "red"})
	require.NoError(t, err)
	_, err = e.SetRules("Sales", []models.Rule{{Operator: models.GT, Threshold: 50000, Color: "green"}})
	require.NoError(t, err)
	e.Bind(models.BindingKey{ShapeID: "s1", Line: 1}, "Sales", "60000")

	p.Capture(e)
	require.NoError(t, p.Save(path, true))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "floor1.pdf", loaded.PDF)
	assert.Equal(t, p.Shapes, loaded.Shapes)

	e2, err := loaded.Open(heatmap.DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, e.Variables(), e2.Variables())
	assert.Equal(t, e.Bindings(), e2.Bindings())
	assert.Equal(t, "#008000", e2.Fill("s1"))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files are left behind")
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	future := filepath.Join(dir, "future.json")
	require.NoError(t, os.WriteFile(future, []byte(`{"version": 99}`), 0644))
	_, err = Load(future)
	assert.ErrorContains(t, err, "unsupported version")
}

func TestOpenInvalidState(t *testing.T) {
	p := New("broken")
	p.Conditions.Variables = []models.Variable{{Name: "X"}, {Name: "X"}}

	_, err := p.Open(heatmap.DefaultOptions())
	assert.ErrorIs(t, err, heatmap.ErrDuplicateName)
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	data := `{
		"pdf_file": "floor1.pdf",
		"shapes": [
			{"id": "a", "name": "Shop A", "type": "rectangle", "coordinates": [0, 0, 5, 5]},
			{"type": "oval"},
			{"id": "a", "name": "Shop C"}
		]
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	pdf, shapes, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "floor1.pdf", pdf)
	require.Len(t, shapes, 3)
	assert.Equal(t, "a", shapes[0].ID)
	assert.Equal(t, "shape-2", shapes[1].ID)
	assert.Equal(t, "Shape 2", shapes[1].Name)
	assert.Equal(t, "shape-3", shapes[2].ID, "duplicate ids are replaced")
	assert.Equal(t, "Shop C", shapes[2].Name)

	_, _, err = LoadLayout(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

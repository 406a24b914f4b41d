// Package project stores a heatmap project as a JSON file: the host
// shapes plus the engine state. It stands in for the host database.
package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ukaji3/heatmap-go/pkg/heatmap"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/output"
)

// FormatVersion is the current project file version.
const FormatVersion = 1

// ErrNotExist indicates a missing project file.
var ErrNotExist = errors.New("project file does not exist")

// Project is the persisted form of one annotated floor plan.
type Project struct {
	// Version is the file format version.
	Version int `json:"version"`
	// Name is the project display name.
	Name string `json:"name"`
	// PDF is the floor plan the shapes were drawn on.
	PDF string `json:"pdf_file,omitempty"`
	// Shapes are the drawn shapes.
	Shapes []models.Shape `json:"shapes"`
	heatmap.State
}

// New returns an empty project.
func New(name string) *Project {
	return &Project{
		Version: FormatVersion,
		Name:    name,
		Shapes:  []models.Shape{},
		State: heatmap.State{
			Conditions: models.Conditions{Version: models.ConditionsVersion, Variables: []models.Variable{}},
			Bindings:   []models.Binding{},
		},
	}
}

// Load reads a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotExist)
	}
	if err != nil {
		return nil, err
	}

	p := New("")
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parse project %s: %w", path, err)
	}
	if p.Version > FormatVersion {
		return nil, fmt.Errorf("project %s: unsupported version %d", path, p.Version)
	}
	return p, nil
}

// LoadOrNew reads a project file, or returns a new project named after the
// file when it does not exist yet.
func LoadOrNew(path string) (*Project, error) {
	p, err := Load(path)
	if errors.Is(err, ErrNotExist) {
		name := filepath.Base(path)
		return New(name[:len(name)-len(filepath.Ext(name))]), nil
	}
	return p, err
}

// Save writes the project through a temporary file so a failed write never
// truncates the previous version.
func (p *Project) Save(path string, pretty bool) error {
	p.Version = FormatVersion
	data, err := output.ToJSON(p, pretty)
	if err != nil {
		return fmt.Errorf("serialize project: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".heatmap-*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Open builds an engine holding the project's shapes and state.
func (p *Project) Open(opts heatmap.Options) (*heatmap.Engine, error) {
	e := heatmap.New(opts)
	e.SetShapes(p.Shapes)
	if err := e.Restore(p.State); err != nil {
		return nil, fmt.Errorf("open project %q: %w", p.Name, err)
	}
	return e, nil
}

// Capture copies the engine's shapes and state back into the project.
func (p *Project) Capture(e *heatmap.Engine) {
	p.Shapes = e.Shapes()
	p.State = e.Snapshot()
}

package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/parser"
)

// layoutFile is the shape layout written by the drawing tool.
type layoutFile struct {
	PDF    string         `json:"pdf_file"`
	Shapes []models.Shape `json:"shapes"`
}

// LoadLayout reads a shape layout file. Shapes without an id get
// "shape-N" and shapes without a name get "Shape N" (1-based).
//
// A workbook (.xlsx, .xlsm) is read as a floor plan drawn with shapes on
// its first sheet that has a drawing; it has no PDF.
func LoadLayout(path string) (string, []models.Shape, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		shapes, err := parser.ReadDrawing(path, "")
		if err != nil {
			return "", nil, err
		}
		return "", shapes, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	var layout layoutFile
	if err := json.Unmarshal(data, &layout); err != nil {
		return "", nil, fmt.Errorf("parse layout %s: %w", path, err)
	}

	seen := make(map[string]bool, len(layout.Shapes))
	for i := range layout.Shapes {
		s := &layout.Shapes[i]
		if s.ID == "" || seen[s.ID] {
			s.ID = fmt.Sprintf("shape-%d", i+1)
		}
		seen[s.ID] = true
		if s.Name == "" {
			s.Name = fmt.Sprintf("Shape %d", i+1)
		}
	}
	return layout.PDF, layout.Shapes, nil
}

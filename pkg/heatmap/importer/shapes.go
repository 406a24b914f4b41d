package importer

import (
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"golang.org/x/text/cases"
)

// ShapeIndex resolves row keys to host shapes.
type ShapeIndex struct {
	fold   cases.Caser
	exact  bool
	byName map[string]string
	ids    map[string]bool
}

// NewShapeIndex indexes shapes by name. Matching ignores case unless
// caseSensitive is set. When two shapes share a name the first one wins.
func NewShapeIndex(shapes []models.Shape, caseSensitive bool) *ShapeIndex {
	idx := &ShapeIndex{
		fold:   cases.Fold(),
		exact:  caseSensitive,
		byName: make(map[string]string, len(shapes)),
		ids:    make(map[string]bool, len(shapes)),
	}
	for _, s := range shapes {
		idx.ids[s.ID] = true
		name := s.Name
		if name == "" {
			name = s.ID
		}
		k := idx.key(name)
		if _, dup := idx.byName[k]; !dup {
			idx.byName[k] = s.ID
		}
	}
	return idx
}

// Lookup returns the shape id named by key.
func (i *ShapeIndex) Lookup(key string) (string, bool) {
	id, ok := i.byName[i.key(key)]
	return id, ok
}

// Has reports whether id is a known shape.
func (i *ShapeIndex) Has(id string) bool {
	return i.ids[id]
}

func (i *ShapeIndex) key(name string) string {
	name = strings.TrimSpace(name)
	if i.exact {
		return name
	}
	return i.fold.String(name)
}

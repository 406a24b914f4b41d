package heatmap

import (
	"github.com/ukaji3/heatmap-go/pkg/heatmap/importer"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/registry"
)

// Error taxonomy re-exported for hosts that only import this package.
var (
	// ErrNotFound indicates a missing variable or binding. Hosts treat it
	// as "use fallback".
	ErrNotFound = registry.ErrNotFound
	// ErrDuplicateName matches every *DuplicateNameError.
	ErrDuplicateName = registry.ErrDuplicateName
	// ErrEmptyName indicates an empty variable name.
	ErrEmptyName = registry.ErrEmptyName
	// ErrNoImport indicates a remap without a previous import.
	ErrNoImport = importer.ErrNoImport
	// ErrInvalidPlan indicates an import plan that does not fit the table.
	ErrInvalidPlan = importer.ErrInvalidPlan
)

type (
	// DuplicateNameError reports a variable name collision.
	DuplicateNameError = registry.DuplicateNameError
	// ParseError reports a malformed conditions document.
	ParseError = registry.ParseError
)

package registry

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a lookup of a missing variable or binding.
var ErrNotFound = errors.New("not found")

// ErrEmptyName indicates an empty variable name.
var ErrEmptyName = errors.New("variable name is empty")

// ErrDuplicateName is matched by every *DuplicateNameError via errors.Is.
var ErrDuplicateName = errors.New("duplicate variable name")

// DuplicateNameError reports a variable name collision on add or rename.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("variable %q already exists", e.Name)
}

// Is makes errors.Is(err, ErrDuplicateName) hold.
func (e *DuplicateNameError) Is(target error) bool {
	return target == ErrDuplicateName
}

// ParseError represents a malformed conditions document.
type ParseError struct {
	Source string // file name or "document"
	Field  string // JSON path of the offending field, if known
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse conditions %s: %s: %v", e.Source, e.Field, e.Err)
	}
	return fmt.Sprintf("parse conditions %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(source, field string, err error) *ParseError {
	return &ParseError{
		Source: source,
		Field:  field,
		Err:    err,
	}
}

package parser

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates an input that is neither xlsx nor csv.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrNoHeader indicates a sheet without any non-empty cell to use as header.
var ErrNoHeader = errors.New("no header row found")

// ReadError represents an error while reading a spreadsheet.
type ReadError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *ReadError) Error() string {
	if e.Sheet != "" {
		return fmt.Sprintf("read %s (sheet %q): %v", e.Path, e.Sheet, e.Err)
	}
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError.
func NewReadError(path, sheet string, err error) *ReadError {
	return &ReadError{
		Path:  path,
		Sheet: sheet,
		Err:   err,
	}
}

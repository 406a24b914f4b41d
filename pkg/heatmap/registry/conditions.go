package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ukaji3/heatmap-go/pkg/heatmap/models"
	"github.com/ukaji3/heatmap-go/pkg/heatmap/output"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a conditions document.
type Format string

const (
	// FormatJSON is the default conditions encoding.
	FormatJSON Format = "json"
	// FormatYAML is accepted for hand-written rule sets.
	FormatYAML Format = "yaml"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ImportMode selects how an imported document combines with the registry.
type ImportMode int

const (
	// Replace discards existing variables.
	Replace ImportMode = iota
	// Merge overwrites same-named variables in place and appends new ones.
	Merge
)

// Export returns the registry as a conditions document.
func (r *Registry) Export() models.Conditions {
	return models.Conditions{
		Version:   models.ConditionsVersion,
		Variables: r.Variables(),
	}
}

// FromConditions builds a registry from a document. Any invalid variable
// fails the whole document.
func FromConditions(doc models.Conditions) (*Registry, error) {
	reg := New()
	for i, v := range doc.Variables {
		field := fmt.Sprintf("variables[%d]", i)
		if _, err := reg.Add(v.Name, v.VariableDefaults); err != nil {
			return nil, NewParseError("document", field, err)
		}
		if err := reg.SetRules(v.Name, v.Rules); err != nil {
			return nil, NewParseError("document", field+".rules", err)
		}
	}
	return reg, nil
}

// Import applies a document to the registry. On error the registry is left
// unchanged. It returns the names whose definition may have changed.
func (r *Registry) Import(doc models.Conditions, mode ImportMode) ([]string, error) {
	incoming, err := FromConditions(doc)
	if err != nil {
		return nil, err
	}

	touched := make([]string, 0, r.Len()+incoming.Len())
	seen := make(map[string]bool)
	note := func(name string) {
		if !seen[name] {
			seen[name] = true
			touched = append(touched, name)
		}
	}

	var next *Registry
	switch mode {
	case Replace:
		for _, name := range r.Names() {
			note(name)
		}
		next = incoming
	case Merge:
		next = r.Clone()
		for _, v := range incoming.vars {
			if existing, ok := next.lookup(v.Name); ok {
				*existing = v.Clone()
				continue
			}
			c := v.Clone()
			next.index[c.Name] = len(next.vars)
			next.vars = append(next.vars, &c)
		}
	default:
		return nil, fmt.Errorf("unknown import mode %d", mode)
	}
	for _, name := range incoming.Names() {
		note(name)
	}

	r.vars, r.index = next.vars, next.index
	return touched, nil
}

// Decode parses a conditions document.
func Decode(data []byte, format Format) (models.Conditions, error) {
	var doc models.Conditions
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err = dec.Decode(&doc); err == nil {
			if _, extra := dec.Token(); extra != io.EOF {
				err = errors.New("unexpected data after document")
			}
		}
	}
	if err != nil {
		return models.Conditions{}, NewParseError("document", "", err)
	}
	if doc.Variables == nil {
		return models.Conditions{}, NewParseError("document", "variables", errors.New("missing variables list"))
	}
	if doc.Version > models.ConditionsVersion {
		return models.Conditions{}, NewParseError("document", "version", fmt.Errorf("unsupported version %d", doc.Version))
	}
	return doc, nil
}

// Encode serializes a conditions document.
func Encode(doc models.Conditions, format Format, pretty bool) ([]byte, error) {
	if format == FormatYAML {
		return yaml.Marshal(doc)
	}
	return output.ToJSON(doc, pretty)
}

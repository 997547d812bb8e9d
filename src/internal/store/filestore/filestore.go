// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package filestore implements a classify.Source backed by a JSON or YAML
// record file.
//
// The file holds a list of objects with an "id" and a "body" field:
//
//	- id: 17
//	  body: '\x3082...'
//	- id: site-18
//	  body: |
//	    -----BEGIN CERTIFICATE-----
//	    ...
//
// Numeric identifiers are accepted and kept exactly as written.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/x509-blob-classifier/src/internal/classify"
)

// Format is the encoding of a record file.
type Format int

const (
	// FormatJSON is a JSON array of records.
	FormatJSON Format = iota
	// FormatYAML is a YAML sequence of records.
	FormatYAML
)

var (
	// ErrMissingPath indicates a Source built without a file path.
	ErrMissingPath = errors.New("filestore: missing path")

	// ErrMissingID indicates a record without an identifier.
	ErrMissingID = errors.New("filestore: record without id")

	// ErrInvalidID indicates an identifier that is not a string or a number.
	ErrInvalidID = errors.New("filestore: record id must be a string or a number")
)

// DetectFormat picks the format from the file extension. Anything other than
// .yaml or .yml is read as JSON.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// recordID keeps an identifier exactly as written in the file, whether it
// was quoted or not.
type recordID string

// UnmarshalYAML takes the scalar text before YAML resolves it to a number,
// so 007 and 0x1F stay as written.
func (r *recordID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d", ErrInvalidID, value.Line)
	}
	*r = recordID(value.Value)
	return nil
}

// UnmarshalJSON accepts a string or the literal text of a number.
func (r *recordID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = recordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidID, data)
	}
	*r = recordID(n)
	return nil
}

// entry mirrors classify.Record with a pointer identifier to tell a missing id apart.
type entry struct {
	ID   *recordID `json:"id" yaml:"id"`
	Body *string   `json:"body" yaml:"body"`
}

// Parse decodes data in the given format into records, keeping file order.
// Identifiers are kept as written. A null or missing body becomes an empty Raw value.
func Parse(data []byte, format Format) ([]classify.Record, error) {
	var entries []entry
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("filestore: failed to parse YAML records: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("filestore: failed to parse JSON records: %w", err)
		}
	}

	records := make([]classify.Record, 0, len(entries))
	for i, e := range entries {
		if e.ID == nil {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingID, i)
		}
		rec := classify.Record{ID: string(*e.ID)}
		if e.Body != nil {
			rec.Raw = *e.Body
		}
		records = append(records, rec)
	}
	return records, nil
}

// Source reads the whole file on every Fetch.
type Source struct {
	path string
}

// New returns a Source for the record file at path.
func New(path string) *Source {
	return &Source{path: path}
}

// Fetch reads and parses the record file.
func (s *Source) Fetch(ctx context.Context) ([]classify.Record, error) {
	if s.path == "" {
		return nil, ErrMissingPath
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("filestore: failed to read records: %w", err)
	}
	return Parse(data, DetectFormat(s.path))
}

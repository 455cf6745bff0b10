// Package validation checks the shape of request payloads against JSON
// Schemas compiled once from the embedded schemas/ directory.
//
// Schemas only describe types. Required fields and enums are enforced by the
// Validate methods in internal/models so that the messages stay stable.
package validation

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/qri-io/jsonschema"

	"github.com/garnizeh/crewtrack/internal/models"
)

// Schema names, matching the file names under schemas/.
const (
	Job    = "job"
	Worker = "worker"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Validator holds compiled schemas by name. It is safe for concurrent use
// once built.
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles the embedded schemas.
func New() (*Validator, error) {
	return Load(schemaFS, "schemas")
}

// Load compiles every *.json file in dir of fsys. A schema is registered
// under its file name without extension.
func Load(fsys fs.FS, dir string) (*Validator, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read schemas dir: %w", err)
	}

	v := &Validator{schemas: make(map[string]*jsonschema.Schema)}
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".json" {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", e.Name(), err)
		}

		rs := &jsonschema.Schema{}
		if err := json.Unmarshal(b, rs); err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", e.Name(), err)
		}
		v.schemas[strings.TrimSuffix(e.Name(), ".json")] = rs
	}

	return v, nil
}

// Validate checks data against the named schema. A document that is not JSON
// or does not match yields a *models.ValidationError; an unknown schema name
// is a programming error and is returned as is.
func (v *Validator) Validate(ctx context.Context, name string, data []byte) error {
	rs, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("no schema named %q", name)
	}

	if !json.Valid(data) {
		return models.NewValidationError("Invalid JSON body")
	}

	kerrs, err := rs.ValidateBytes(ctx, data)
	if err != nil {
		return models.NewValidationError("Invalid JSON body")
	}
	if len(kerrs) > 0 {
		return keyError(kerrs[0])
	}

	return nil
}

// ValidateEach checks that data is a JSON array and validates every element
// against the named schema. It returns the raw elements on success.
// Elements are reported by their zero-based index.
func (v *Validator) ValidateEach(ctx context.Context, name string, data []byte) ([]json.RawMessage, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil, models.NewValidationError(fmt.Sprintf("Invalid data format. Expected array of %ss", name))
	}

	for i, item := range items {
		if err := v.Validate(ctx, name, item); err != nil {
			return nil, models.NewValidationError(fmt.Sprintf("Entry %d: %s", i, err.Error()))
		}
	}

	return items, nil
}

func keyError(ke jsonschema.KeyError) *models.ValidationError {
	field := strings.TrimPrefix(ke.PropertyPath, "/")
	if field == "" {
		return models.NewValidationError("Invalid request body: " + ke.Message)
	}

	return models.NewValidationError(fmt.Sprintf("Invalid %s: %s", field, ke.Message))
}

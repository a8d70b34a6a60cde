package report

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/google/go-cmp/cmp"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ErrSchema wraps schema violations found by Validate
var ErrSchema = errors.New("report does not match context schema")

//go:embed context.schema.json
var contextSchema string

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("context.schema.json", contextSchema)
})

// Validate checks the types of the well-known context keys
func (r Report) Validate() error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile context schema: %w", err)
	}

	doc, err := Normalize(map[string]any(r))
	if err != nil {
		return err
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// Diff compares the expected keys against the report and returns a
// human-readable diff, or "" when every expected key matches.
// Keys missing from the report show up as removed entries.
func (r Report) Diff(expected map[string]any) (string, error) {
	want, err := Normalize(expected)
	if err != nil {
		return "", err
	}

	got := make(map[string]any, len(expected))
	for key := range expected {
		if v, ok := r[key]; ok {
			got[key] = v
		}
	}
	gotNorm, err := Normalize(got)
	if err != nil {
		return "", err
	}

	return cmp.Diff(want, gotNorm), nil
}

package library

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	itemsSchemaFile   = "items.schema.json"
	foldersSchemaFile = "folders.schema.json"
)

var (
	schemasOnce   sync.Once
	itemsSchema   *jsonschema.Schema
	foldersSchema *jsonschema.Schema
	schemasErr    error
)

// compileSchemas compiles the embedded schemas once per process.
func compileSchemas() error {
	schemasOnce.Do(func() {
		itemsSchema, schemasErr = compileSchema(itemsSchemaFile)
		if schemasErr != nil {
			return
		}
		foldersSchema, schemasErr = compileSchema(foldersSchemaFile)
	})
	return schemasErr
}

func compileSchema(name string) (*jsonschema.Schema, error) {
	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("reading schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(raw)); err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", name, err)
	}
	schema, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("compiling schema %s: %w", name, err)
	}
	return schema, nil
}

// decodeValidated parses raw, checks it against schema, and decodes it into
// out. Any failure means the stored value is unusable.
func decodeValidated(schema *jsonschema.Schema, raw string, out any) error {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return fmt.Errorf("parsing: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("validating: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("decoding: %w", err)
	}
	return nil
}

package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed world.schema.json
var worldSchemaJSON string

var worldSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	return jsonschema.CompileString("world.schema.json", worldSchemaJSON)
})

// ValidateDocument checks that data has the shape of a persisted store.
func ValidateDocument(data []byte) error {
	schema, err := worldSchema()
	if err != nil {
		return fmt.Errorf("compiling world schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("parsing document: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("validating document: %w", err)
	}
	return nil
}

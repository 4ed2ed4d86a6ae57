package ceremony

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed contributionSchema.json
var contributionSchema string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("contributionSchema.json", strings.NewReader(contributionSchema)); err != nil {
			schemaErr = err
			return
		}
		schema, schemaErr = compiler.Compile("contributionSchema.json")
	})
	return schema, schemaErr
}

// ValidateSchema checks a raw contribution document against the embedded
// JSON schema. It does not parse any points; FromJSON followed by Parse does
// the full decoding.
func ValidateSchema(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSchema, err)
	}
	return nil
}

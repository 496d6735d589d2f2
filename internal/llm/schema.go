package llm

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaFor derives a strict-mode JSON schema from T's struct tags.
// Definitions are inlined because the provider's strict json_schema
// format does not resolve $ref across a definitions block, and the
// draft/$id keywords are stripped for the same reason.
func SchemaFor[T any]() (map[string]any, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}

	var zero T
	schema := reflector.Reflect(&zero)

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to rebuild schema: %w", err)
	}

	delete(out, "$schema")
	delete(out, "$id")

	return out, nil
}

// MustSchemaFor is SchemaFor for statically known types, where a
// failure is a programming error.
func MustSchemaFor[T any]() map[string]any {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

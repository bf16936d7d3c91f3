package cmsclient

import (
	"bytes"
	"encoding/json"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema is the contract a CMS document has to satisfy before it is
// handed to callers. Localized fields are objects keyed by locale code; the
// CMS dataset is edited by humans, so a partially filled document is normal
// and only structurally broken ones are rejected.
func documentSchema() map[string]any {
	localized := map[string]any{
		"type":                 "object",
		"additionalProperties": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"_id":   map[string]any{"type": "string", "minLength": 1},
			"_type": map[string]any{"type": "string", "minLength": 1},
			"slug":  map[string]any{"type": "string", "minLength": 1},
			"title": localized,
			"excerpt": localized,
			"body":    localized,
			"author":  map[string]any{"type": "string"},
			"categories": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"publishedAt": map[string]any{"type": "string"},
		},
		"required": []any{"_id", "_type", "slug"},
	}
}

func compileDocumentSchema() (*jsonschema.Schema, error) {
	encoded, err := json.Marshal(documentSchema())
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("document.json", bytes.NewReader(encoded)); err != nil {
		return nil, err
	}
	return compiler.Compile("document.json")
}

// Package patch decodes RFC 6902 patch documents and applies them to entities.
package patch

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Domenick1991/flightdesk/internal/apperr"
	"github.com/xeipuuv/gojsonschema"
)

type Op string

const (
	Add     Op = "add"
	Remove  Op = "remove"
	Replace Op = "replace"
	Move    Op = "move"
	Copy    Op = "copy"
	Test    Op = "test"
)

// Operation is a single patch instruction. Value is kept raw until the
// operation is interpreted so numbers keep their textual form.
type Operation struct {
	Op    Op              `json:"op"`
	Path  string          `json:"path"`
	From  string          `json:"from,omitempty"`
	Value json.RawMessage `json:"value,omitempty"`
}

type Document []Operation

const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["op", "path"],
    "properties": {
      "op":    {"type": "string", "enum": ["add", "remove", "replace", "move", "copy", "test"]},
      "path":  {"type": "string"},
      "from":  {"type": "string"},
      "value": {}
    },
    "allOf": [
      {
        "if":   {"properties": {"op": {"enum": ["add", "replace", "test"]}}},
        "then": {"required": ["value"]}
      },
      {
        "if":   {"properties": {"op": {"enum": ["move", "copy"]}}},
        "then": {"required": ["from"]}
      }
    ]
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
})

// Decode validates body against the patch document schema and decodes it.
func Decode(body []byte) (Document, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile patch schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, apperr.BadArgument("malformed patch document: %v", err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, re := range result.Errors() {
			problems = append(problems, re.String())
		}
		return nil, apperr.Validation(problems...)
	}

	var doc Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperr.BadArgument("malformed patch document: %v", err)
	}
	return doc, nil
}

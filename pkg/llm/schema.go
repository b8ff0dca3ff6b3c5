package llm

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonschema"
)

// graphSchema is the strict output contract for the structuring step. The
// model returns the graph skeleton; enrichment records are re-attached
// afterwards from data we already hold, so they are not part of the
// contract here.
const graphSchema = `{
  "type": "object",
  "required": ["root", "nodes", "edges"],
  "properties": {
    "root": {"$ref": "#/$defs/node"},
    "nodes": {
      "type": "array",
      "items": {"$ref": "#/$defs/node"}
    },
    "edges": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["from", "to"],
        "properties": {
          "from": {"type": "string", "minLength": 1},
          "to": {"type": "string", "minLength": 1},
          "label": {"type": "string"},
          "strength": {"type": "number"}
        }
      }
    }
  },
  "$defs": {
    "node": {
      "type": "object",
      "required": ["id", "name", "type"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "name": {"type": "string", "minLength": 1},
        "type": {"enum": ["company", "dependency", "dependent"]},
        "category": {"type": "string"},
        "relationship": {"type": "string"},
        "hover_info": {"type": "string"}
      }
    }
  }
}`

var compiledGraphSchema *jsonschema.Schema

func init() {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile([]byte(graphSchema))
	if err != nil {
		panic(fmt.Sprintf("invalid graph schema: %v", err))
	}
	compiledGraphSchema = schema
}

// ValidateGraphJSON checks structured output against the graph contract.
func ValidateGraphJSON(data []byte) error {
	var instance interface{}
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("graph output is not valid JSON: %w", err)
	}

	result := compiledGraphSchema.Validate(instance)
	if !result.IsValid() {
		var errMsg string
		for field, fieldErr := range result.Errors {
			if errMsg != "" {
				errMsg += "; "
			}
			errMsg += fmt.Sprintf("%s: %s", field, fieldErr.Message)
		}
		return fmt.Errorf("graph output violates contract: %s", errMsg)
	}

	return nil
}

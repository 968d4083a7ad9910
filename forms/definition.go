package forms

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// definitionSchema constrains form definition documents supplied by hosts
// (config files, admin APIs) before they are converted into Form values.
const definitionSchema = `{
  "type": "object",
  "required": ["name"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "version": {"type": "integer", "minimum": 1},
    "template": {"type": "string"},
    "fields": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "required": ["type"],
        "properties": {
          "type": {"enum": ["date", "text", "status", "number", "select"]},
          "required": {"type": "boolean"},
          "options": {"type": "array", "items": {"type": "string"}}
        },
        "additionalProperties": false
      }
    }
  },
  "additionalProperties": false
}`

var (
	definitionOnce     sync.Once
	definitionCompiled *jsonschema.Schema
)

func compiledDefinitionSchema() *jsonschema.Schema {
	definitionOnce.Do(func() {
		definitionCompiled = jsonschema.MustCompileString("form-definition.schema.json", definitionSchema)
	})
	return definitionCompiled
}

// ValidateDefinition checks a raw definition document against the definition
// schema. The document is normalised through JSON encoding first so native Go
// integer values validate the same way decoded JSON does.
func ValidateDefinition(doc map[string]any) error {
	normalized, err := normalizeDefinition(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	if err := compiledDefinitionSchema().Validate(normalized); err != nil {
		return fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}
	return nil
}

// FormFromDefinition validates a raw definition document and converts it into
// a Form ready for registration.
func FormFromDefinition(doc map[string]any) (Form, error) {
	if err := ValidateDefinition(doc); err != nil {
		return Form{}, err
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return Form{}, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}

	var form Form
	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&form); err != nil {
		return Form{}, fmt.Errorf("%w: %v", ErrDefinitionInvalid, err)
	}

	if form.Version == 0 {
		form.Version = 1
	}
	if err := form.Validate(); err != nil {
		return Form{}, err
	}
	return form, nil
}

func normalizeDefinition(doc map[string]any) (any, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var normalized any
	if err := json.Unmarshal(payload, &normalized); err != nil {
		return nil, err
	}
	return normalized, nil
}

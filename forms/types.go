package forms

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// FieldType enumerates the value kinds a form field can declare.
type FieldType string

const (
	FieldTypeDate   FieldType = "date"
	FieldTypeText   FieldType = "text"
	FieldTypeStatus FieldType = "status"
	FieldTypeNumber FieldType = "number"
	FieldTypeSelect FieldType = "select"
)

// FieldSpec declares the shape of a single named field. Options is only
// meaningful for select/status fields, where it lists the accepted values.
type FieldSpec struct {
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Validate checks the field spec declaration.
func (s FieldSpec) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Type, validation.Required, validation.In(
			FieldTypeDate, FieldTypeText, FieldTypeStatus, FieldTypeNumber, FieldTypeSelect,
		)),
	)
}

// Form describes a named entry schema: a Markdown skeleton plus the field
// specs whose names map onto H2 section headings. Forms are immutable once
// handed to an editing session; the registry returns defensive copies.
type Form struct {
	Name     string               `json:"name" yaml:"name"`
	Version  int                  `json:"version" yaml:"version"`
	Template string               `json:"template" yaml:"template"`
	Fields   map[string]FieldSpec `json:"fields" yaml:"fields"`
}

// Validate checks the form declaration, including every field spec.
func (f Form) Validate() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 128)),
		validation.Field(&f.Version, validation.Min(1)),
	); err != nil {
		return err
	}
	for name, spec := range f.Fields {
		if strings.TrimSpace(name) == "" {
			return ErrFieldNameRequired
		}
		if err := spec.Validate(); err != nil {
			return fmt.Errorf("forms: field %q: %w", name, err)
		}
	}
	return nil
}

// Clone returns a deep copy so callers cannot mutate registered forms.
func (f Form) Clone() Form {
	copied := f
	if f.Fields != nil {
		copied.Fields = make(map[string]FieldSpec, len(f.Fields))
		for name, spec := range f.Fields {
			if len(spec.Options) > 0 {
				spec.Options = append([]string(nil), spec.Options...)
			}
			copied.Fields[name] = spec
		}
	}
	return copied
}

// Field looks up a field spec by name using trimmed, case-insensitive
// comparison, matching how section headings are resolved.
func (f Form) Field(name string) (FieldSpec, bool) {
	target := strings.ToLower(strings.TrimSpace(name))
	for candidate, spec := range f.Fields {
		if strings.ToLower(strings.TrimSpace(candidate)) == target {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

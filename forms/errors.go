package forms

import "errors"

var (
	ErrFormNameRequired      = errors.New("forms: form name is required")
	ErrFormNotFound          = errors.New("forms: form not found")
	ErrFormVersionConflict   = errors.New("forms: version lower than registered form")
	ErrFieldNameRequired     = errors.New("forms: field name is required")
	ErrDefinitionInvalid     = errors.New("forms: definition document invalid")
	ErrDefinitionUnsupported = errors.New("forms: definition field type unsupported")
)

package forms_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-knowledge/forms"
)

func meetingDefinition() map[string]any {
	return map[string]any{
		"name":     "Meeting",
		"version":  2,
		"template": "# Meeting\n\n## Date\n",
		"fields": map[string]any{
			"Date": map[string]any{
				"type":     "date",
				"required": true,
			},
			"Status": map[string]any{
				"type":    "status",
				"options": []any{"open", "closed"},
			},
		},
	}
}

func TestValidateDefinition(t *testing.T) {
	if err := forms.ValidateDefinition(meetingDefinition()); err != nil {
		t.Fatalf("valid definition rejected: %v", err)
	}

	cases := []struct {
		name string
		doc  map[string]any
	}{
		{"missing name", map[string]any{"version": 1}},
		{"bad field type", map[string]any{
			"name": "Meeting",
			"fields": map[string]any{
				"Date": map[string]any{"type": "timestamp"},
			},
		}},
		{"unknown top-level key", map[string]any{
			"name":   "Meeting",
			"layout": "grid",
		}},
		{"zero version", map[string]any{
			"name":    "Meeting",
			"version": 0,
		}},
		{"unknown field key", map[string]any{
			"name": "Meeting",
			"fields": map[string]any{
				"Date": map[string]any{"type": "date", "placeholder": "YYYY-MM-DD"},
			},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := forms.ValidateDefinition(tc.doc); !errors.Is(err, forms.ErrDefinitionInvalid) {
				t.Fatalf("err = %v, want ErrDefinitionInvalid", err)
			}
		})
	}
}

func TestFormFromDefinition(t *testing.T) {
	form, err := forms.FormFromDefinition(meetingDefinition())
	if err != nil {
		t.Fatalf("from definition: %v", err)
	}

	if form.Name != "Meeting" || form.Version != 2 {
		t.Fatalf("form = %q v%d, want Meeting v2", form.Name, form.Version)
	}
	if form.Template != "# Meeting\n\n## Date\n" {
		t.Fatalf("template = %q", form.Template)
	}

	date, ok := form.Field("Date")
	if !ok || date.Type != forms.FieldTypeDate || !date.Required {
		t.Fatalf("date field = %+v, ok = %v", date, ok)
	}
	status, ok := form.Field("Status")
	if !ok || status.Type != forms.FieldTypeStatus {
		t.Fatalf("status field = %+v, ok = %v", status, ok)
	}
	if len(status.Options) != 2 || status.Options[0] != "open" {
		t.Fatalf("status options = %v", status.Options)
	}
}

func TestFormFromDefinitionDefaultsVersion(t *testing.T) {
	form, err := forms.FormFromDefinition(map[string]any{"name": "Note"})
	if err != nil {
		t.Fatalf("from definition: %v", err)
	}
	if form.Version != 1 {
		t.Fatalf("version = %d, want 1", form.Version)
	}
}

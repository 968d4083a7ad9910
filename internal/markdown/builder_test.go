package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-knowledge/forms"
)

func meetingForm() forms.Form {
	return forms.Form{
		Name:     "Meeting",
		Version:  1,
		Template: "# Meeting\n\n## Date\n",
		Fields: map[string]forms.FieldSpec{
			"Date": {Type: forms.FieldTypeDate, Required: true},
		},
	}
}

func TestBuildEntryMarkdown_MarkdownModePassthrough(t *testing.T) {
	raw := "# Entry\n\n---\nform: Meeting\n---\n\n## Date\n2026-02-14\n"
	values := map[string]string{RawMarkdownField: raw}

	got := BuildEntryMarkdown(meetingForm(), "Entry", values, EditModeMarkdown)

	if got != raw {
		t.Fatalf("markdown mode must return the override byte-for-byte\n got: %q\nwant: %q", got, raw)
	}
}

func TestBuildEntryMarkdown_MarkdownModeEmptyOverrideSynthesizes(t *testing.T) {
	values := map[string]string{
		RawMarkdownField: "  \n ",
		"Date":           "2026-03-01",
	}

	got := BuildEntryMarkdown(meetingForm(), "Standup", values, EditModeMarkdown)

	want := "---\nform: Meeting\n---\n\n# Standup\n\n## Date\n2026-03-01\n"
	if got != want {
		t.Fatalf("blank override must fall back to synthesis\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildEntryMarkdown_WebformSynthesis(t *testing.T) {
	values := map[string]string{"Date": "2026-03-01"}

	got := BuildEntryMarkdown(meetingForm(), "Standup", values, EditModeWebform)

	want := "---\nform: Meeting\n---\n\n# Standup\n\n## Date\n2026-03-01\n"
	if got != want {
		t.Fatalf("webform synthesis mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildEntryMarkdown_ChatMatchesWebform(t *testing.T) {
	values := map[string]string{"Date": "2026-03-01"}
	form := meetingForm()

	webform := BuildEntryMarkdown(form, "Standup", values, EditModeWebform)
	chat := BuildEntryMarkdown(form, "Standup", values, EditModeChat)

	if webform != chat {
		t.Fatalf("chat mode diverged from webform\nwebform: %q\n   chat: %q", webform, chat)
	}
}

func TestBuildEntryMarkdown_EmptyValues(t *testing.T) {
	got := BuildEntryMarkdown(meetingForm(), "Standup", nil, EditModeWebform)

	want := "---\nform: Meeting\n---\n\n# Standup\n\n## Date\n"
	if got != want {
		t.Fatalf("empty values should yield the bare templated document\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildEntryMarkdown_SkipsReservedAndEmptyFields(t *testing.T) {
	values := map[string]string{
		"Date":           "2026-03-01",
		"Status":         "   ",
		RawMarkdownField: "# ignored in webform\n",
		"__draft":        "true",
	}

	got := BuildEntryMarkdown(meetingForm(), "Standup", values, EditModeWebform)

	if strings.Contains(got, "__") {
		t.Fatalf("reserved fields leaked into document: %q", got)
	}
	if strings.Contains(got, "## Status") {
		t.Fatalf("empty value created a section: %q", got)
	}
	want := "---\nform: Meeting\n---\n\n# Standup\n\n## Date\n2026-03-01\n"
	if got != want {
		t.Fatalf("synthesis mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestBuildEntryMarkdown_DoesNotMutateInputs(t *testing.T) {
	form := meetingForm()
	values := map[string]string{"Date": "2026-03-01", RawMarkdownField: "raw"}

	BuildEntryMarkdown(form, "Standup", values, EditModeWebform)

	if len(values) != 2 || values["Date"] != "2026-03-01" || values[RawMarkdownField] != "raw" {
		t.Fatalf("values map mutated: %#v", values)
	}
	if form.Template != "# Meeting\n\n## Date\n" {
		t.Fatalf("form template mutated: %q", form.Template)
	}
}

func TestBuildEntryMarkdown_RoundTrip(t *testing.T) {
	form := meetingForm()
	form.Fields["Status"] = forms.FieldSpec{Type: forms.FieldTypeStatus}
	values := map[string]string{
		"Date":   "2026-03-01",
		"Status": "active",
	}

	doc := BuildEntryMarkdown(form, "Standup", values, EditModeWebform)
	extracted := ExtractFieldValues(doc, form)

	if len(extracted) != len(values) {
		t.Fatalf("round trip size mismatch: %#v vs %#v", extracted, values)
	}
	for name, want := range values {
		if got := extracted[name]; got != want {
			t.Fatalf("round trip field %q = %q, want %q", name, got, want)
		}
	}
}

func TestBuildEntryMarkdown_UpdatePreservesUnrelatedSections(t *testing.T) {
	form := meetingForm()
	form.Fields["Notes"] = forms.FieldSpec{Type: forms.FieldTypeText}

	doc := BuildEntryMarkdown(form, "Standup", map[string]string{
		"Date":  "2026-03-01",
		"Notes": "keep *this* formatting\n\n- a\n- b",
	}, EditModeWebform)

	updated := UpdateH2Section(doc, "Date", "2026-04-01")

	before, ok := SectionBody(doc, "Notes")
	if !ok {
		t.Fatalf("notes section missing: %q", doc)
	}
	after, ok := SectionBody(updated, "Notes")
	if !ok {
		t.Fatalf("notes section lost after update: %q", updated)
	}
	if before != after {
		t.Fatalf("unrelated section changed\nbefore: %q\n after: %q", before, after)
	}
}

func TestEditMode_Valid(t *testing.T) {
	for _, mode := range []EditMode{EditModeMarkdown, EditModeWebform, EditModeChat} {
		if !mode.Valid() {
			t.Fatalf("mode %q should be valid", mode)
		}
	}
	if EditMode("inline").Valid() {
		t.Fatalf("unknown mode accepted")
	}
}

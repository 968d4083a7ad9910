package markdown

import (
	"sort"
	"strings"

	"github.com/goliatone/go-knowledge/forms"
)

// EditMode selects which representation of an entry is authoritative when the
// canonical document is built.
type EditMode string

const (
	// EditModeMarkdown treats the raw Markdown text as authoritative.
	EditModeMarkdown EditMode = "markdown"
	// EditModeWebform treats the structured field map as authoritative.
	EditModeWebform EditMode = "webform"
	// EditModeChat is the conversational UI contract; it shares the webform
	// synthesis path.
	EditModeChat EditMode = "chat"
)

// RawMarkdownField is the reserved pseudo-field carrying the raw-Markdown
// override in markdown mode.
const RawMarkdownField = "__markdown"

// reservedFieldPrefix marks pseudo-fields consumed by the builder itself;
// they are never synthesized into sections.
const reservedFieldPrefix = "__"

// Valid reports whether the mode is one of the closed set of variants.
func (m EditMode) Valid() bool {
	switch m {
	case EditModeMarkdown, EditModeWebform, EditModeChat:
		return true
	}
	return false
}

// BuildEntryMarkdown produces the canonical Markdown document for an entry.
//
// In markdown mode, a non-empty raw override is returned verbatim: the user's
// exact text, including all whitespace, is the output. Every other mode (and
// markdown mode with an empty override) synthesizes the document from the
// form template by running, in order, frontmatter insertion, title rewrite,
// and one section update per non-reserved field with a non-empty value.
//
// The function is pure: it never mutates form or values and returns no error.
// An empty title yields an H1 with empty text; empty values yield the bare
// templated document with frontmatter and title only.
func BuildEntryMarkdown(form forms.Form, title string, values map[string]string, mode EditMode) string {
	if mode == EditModeMarkdown {
		if raw, ok := values[RawMarkdownField]; ok && strings.TrimSpace(raw) != "" {
			return raw
		}
	}

	doc := EnsureFrontmatter(form.Template, form.Name)
	doc = ReplaceFirstH1(doc, title)

	// Map iteration order is randomized; sort so newly appended sections land
	// in a deterministic position.
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.HasPrefix(name, reservedFieldPrefix) {
			continue
		}
		doc = UpdateH2Section(doc, name, values[name])
	}
	return doc
}

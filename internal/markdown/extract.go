package markdown

import (
	"strings"

	"github.com/goliatone/go-knowledge/forms"
)

// ExtractFieldValues re-reads field values out of a document by matching H2
// section headings against the form's field names. It is the inverse of the
// synthesis path for fields whose values contain no heading-like lines:
// building a document from a value map and extracting it again reproduces the
// map. Fields without a section, or with an empty body, are omitted.
func ExtractFieldValues(document string, form forms.Form) map[string]string {
	values := make(map[string]string, len(form.Fields))
	for name := range form.Fields {
		body, ok := SectionBody(document, name)
		if !ok {
			continue
		}
		value := strings.TrimRight(body, "\n")
		if strings.TrimSpace(value) == "" {
			continue
		}
		values[name] = value
	}
	return values
}

// SectionBody returns the raw body of the first H2 section matching
// fieldName, without the heading line. The boolean reports whether a matching
// section exists.
func SectionBody(document, fieldName string) (string, bool) {
	lines := strings.Split(document, "\n")
	target := normalizeHeading(fieldName)

	for i := frontmatterEnd(lines); i < len(lines); i++ {
		if !isH2(lines[i]) {
			continue
		}
		if normalizeHeading(strings.TrimPrefix(lines[i], "## ")) != target {
			continue
		}
		end := i + 1
		for end < len(lines) && !isTopHeading(lines[end]) {
			end++
		}
		return strings.Join(lines[i+1:end], "\n"), true
	}
	return "", false
}

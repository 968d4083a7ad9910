package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// fence is the delimiter line opening and closing a frontmatter block.
const fence = "---"

// FrontMatter carries the metadata extracted from an entry document. Form
// names the owning schema; Custom holds any additional keys verbatim.
type FrontMatter struct {
	Form   string
	Title  string
	Custom map[string]any
}

type frontMatterEnvelope struct {
	Form   string         `yaml:"form"`
	Title  string         `yaml:"title"`
	Custom map[string]any `yaml:",inline"`
}

// HasFrontmatter reports whether the document opens with a recognized
// frontmatter block: a fence line at the very start plus a matching closing
// fence further down.
func HasFrontmatter(document string) bool {
	lines := strings.Split(document, "\n")
	return frontmatterEnd(lines) > 0
}

// EnsureFrontmatter guarantees the document carries a frontmatter block. An
// existing block is returned unchanged, even when its declared form name
// differs from formName; drift is surfaced by the entry service, never
// silently corrected here. When no block exists a minimal one declaring
// `form: formName` is prepended and the rest of the document is preserved
// verbatim. Applying the operation twice yields the same result as once.
func EnsureFrontmatter(document, formName string) string {
	if HasFrontmatter(document) {
		return document
	}
	block := renderFrontmatter(formName)
	if document == "" {
		return block
	}
	return block + "\n" + document
}

// ParseFrontMatter extracts metadata and the Markdown body from the provided
// source bytes. The body is returned without the delimiter lines.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var env frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &env)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	custom := env.Custom
	if custom == nil {
		custom = map[string]any{}
	}

	return FrontMatter{
		Form:   env.Form,
		Title:  env.Title,
		Custom: custom,
	}, body, nil
}

// frontmatterEnd returns the index of the first body line, or 0 when the
// document carries no recognized block. An opening fence without a matching
// closing fence is not a block; the whole document is treated as body text.
func frontmatterEnd(lines []string) int {
	if len(lines) == 0 || !isFence(lines[0]) {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if isFence(lines[i]) {
			return i + 1
		}
	}
	return 0
}

func isFence(line string) bool {
	return strings.TrimRight(line, " \t\r") == fence
}

func renderFrontmatter(formName string) string {
	payload := struct {
		Form string `yaml:"form"`
	}{Form: formName}

	data, err := yaml.Marshal(payload)
	if err != nil {
		// yaml.Marshal cannot fail for a plain string field; keep a fallback anyway.
		data = []byte("form: " + formName + "\n")
	}
	return fence + "\n" + string(data) + fence + "\n"
}

package markdown

import "strings"

// ReplaceFirstH1 sets the document's leading H1 to title. The first H1 line
// outside the frontmatter block is rewritten in place; every other line,
// including blank lines around it, is untouched. When no H1 exists one is
// inserted immediately after the frontmatter block (or at the very start),
// followed by a single blank line ahead of any existing content.
func ReplaceFirstH1(document, title string) string {
	lines := strings.Split(document, "\n")
	body := frontmatterEnd(lines)

	for i := body; i < len(lines); i++ {
		if isH1(lines[i]) {
			lines[i] = "# " + title
			return strings.Join(lines, "\n")
		}
	}

	heading := "# " + title
	rest := lines[body:]

	out := make([]string, 0, len(lines)+2)
	out = append(out, lines[:body]...)
	out = append(out, heading)
	if len(rest) > 0 && rest[0] != "" {
		out = append(out, "")
	}
	out = append(out, rest...)
	return strings.Join(out, "\n")
}

func isH1(line string) bool {
	return strings.HasPrefix(line, "# ")
}

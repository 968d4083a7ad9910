package markdown

import "strings"

// UpdateH2Section finds the H2 section whose heading matches fieldName and
// replaces its body with value. Heading comparison trims whitespace and
// ignores case; the first matching heading wins when duplicates exist. The
// body runs from the line after the heading up to the next H1/H2 heading or
// the end of the document. When no section matches, a new one is appended
// after a blank-line separator. Empty or whitespace-only values never create
// a section and leave an existing one unmodified.
//
// The operation is fold-safe: calling it once per field against the same
// accumulating document converges on the section set implied by the non-empty
// values, regardless of application order.
func UpdateH2Section(document, fieldName, value string) string {
	if strings.TrimSpace(value) == "" {
		return document
	}

	lines := strings.Split(document, "\n")
	target := normalizeHeading(fieldName)

	for i := frontmatterEnd(lines); i < len(lines); i++ {
		if !isH2(lines[i]) {
			continue
		}
		if normalizeHeading(strings.TrimPrefix(lines[i], "## ")) != target {
			continue
		}
		return replaceSectionBody(lines, i, value)
	}

	return appendSection(document, fieldName, value)
}

// replaceSectionBody splices the new body into the section opened at heading,
// leaving every line outside the section boundary byte-identical.
func replaceSectionBody(lines []string, heading int, value string) string {
	end := heading + 1
	for end < len(lines) && !isTopHeading(lines[end]) {
		end++
	}

	body := strings.Split(strings.TrimRight(value, "\n"), "\n")
	if end == len(lines) {
		// keep the document newline-terminated
		body = append(body, "")
	} else if end > heading+1 && lines[end-1] == "" {
		// keep the blank separator ahead of the next section
		body = append(body, "")
	}

	out := make([]string, 0, heading+1+len(body)+len(lines)-end)
	out = append(out, lines[:heading+1]...)
	out = append(out, body...)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n")
}

// appendSection adds a new section at the end of the document without
// disturbing existing content.
func appendSection(document, fieldName, value string) string {
	out := document
	if out != "" {
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if !strings.HasSuffix(out, "\n\n") {
			out += "\n"
		}
	}
	return out + "## " + strings.TrimSpace(fieldName) + "\n" + strings.TrimRight(value, "\n") + "\n"
}

func normalizeHeading(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func isH2(line string) bool {
	return strings.HasPrefix(line, "## ")
}

func isTopHeading(line string) bool {
	return isH1(line) || isH2(line)
}

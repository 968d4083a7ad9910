package markdown

import (
	"strings"
	"testing"
)

func TestReplaceFirstH1_ReplacesInPlace(t *testing.T) {
	doc := "---\nform: Meeting\n---\n\n# Old Title\n\nIntro text\n\n## Date\n2026-03-01\n"

	got := ReplaceFirstH1(doc, "New Title")

	want := "---\nform: Meeting\n---\n\n# New Title\n\nIntro text\n\n## Date\n2026-03-01\n"
	if got != want {
		t.Fatalf("ReplaceFirstH1 mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestReplaceFirstH1_PreservesTail(t *testing.T) {
	tail := "\n\nParagraph one\n\n## Notes\n  indented value \n\ttabbed\n"
	doc := "# Heading" + tail

	got := ReplaceFirstH1(doc, "Replaced")

	if !strings.HasPrefix(got, "# Replaced") {
		t.Fatalf("heading not replaced: %q", got)
	}
	if rest := strings.TrimPrefix(got, "# Replaced"); rest != tail {
		t.Fatalf("tail altered\n got: %q\nwant: %q", rest, tail)
	}
}

func TestReplaceFirstH1_InsertAtStart(t *testing.T) {
	got := ReplaceFirstH1("Some text\n", "Title")

	want := "# Title\n\nSome text\n"
	if got != want {
		t.Fatalf("insert at start = %q, want %q", got, want)
	}
}

func TestReplaceFirstH1_InsertAfterFrontmatter(t *testing.T) {
	got := ReplaceFirstH1("---\nform: X\n---\n\nBody\n", "Title")

	want := "---\nform: X\n---\n# Title\n\nBody\n"
	if got != want {
		t.Fatalf("insert after frontmatter = %q, want %q", got, want)
	}
}

func TestReplaceFirstH1_EmptyDocument(t *testing.T) {
	if got := ReplaceFirstH1("", "Title"); got != "# Title\n" {
		t.Fatalf("empty document = %q, want %q", got, "# Title\n")
	}
}

func TestReplaceFirstH1_EmptyTitle(t *testing.T) {
	got := ReplaceFirstH1("# Something\nbody\n", "")

	want := "# \nbody\n"
	if got != want {
		t.Fatalf("empty title = %q, want %q", got, want)
	}
}

func TestReplaceFirstH1_SkipsFrontmatterComments(t *testing.T) {
	// A YAML comment inside the block looks like an H1 but must not be touched.
	doc := "---\n# pinned by ops\nform: X\n---\nBody\n"

	got := ReplaceFirstH1(doc, "Title")

	want := "---\n# pinned by ops\nform: X\n---\n# Title\n\nBody\n"
	if got != want {
		t.Fatalf("frontmatter comment handling = %q, want %q", got, want)
	}
}

func TestReplaceFirstH1_MalformedFrontmatterIsBody(t *testing.T) {
	// Without a closing fence the whole document is body text, so the first
	// H1-looking line is fair game.
	doc := "---\nform: X\n# Heading\nrest\n"

	got := ReplaceFirstH1(doc, "Title")

	want := "---\nform: X\n# Title\nrest\n"
	if got != want {
		t.Fatalf("malformed frontmatter handling = %q, want %q", got, want)
	}
}

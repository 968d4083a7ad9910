package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"

	knowledge "github.com/goliatone/go-knowledge"
	"github.com/goliatone/go-knowledge/entries"
)

// fieldFlags collects repeated -field Name=value pairs.
type fieldFlags map[string]string

func (f fieldFlags) String() string {
	pairs := make([]string, 0, len(f))
	for name, value := range f {
		pairs = append(pairs, name+"="+value)
	}
	return strings.Join(pairs, ",")
}

func (f fieldFlags) Set(raw string) error {
	name, value, ok := strings.Cut(raw, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return fmt.Errorf("field must be Name=value, got %q", raw)
	}
	f[strings.TrimSpace(name)] = value
	return nil
}

func main() {
	fields := fieldFlags{}
	var (
		definitionPath = flag.String("definition", "", "Path to a JSON form definition file")
		title          = flag.String("title", "", "Entry title")
		slugFlag       = flag.String("slug", "", "Explicit entry slug (derived from the title when empty)")
		mode           = flag.String("mode", "webform", "Edit mode: markdown, webform, or chat")
		markdownFile   = flag.String("markdown-file", "", "Raw markdown document (markdown mode only)")
		dsn            = flag.String("db", "", "SQLite DSN; when set the entry is persisted")
		space          = flag.String("space", "", "Space UUID (required with -db)")
		renderHTML     = flag.Bool("html", false, "Render the composed document to HTML")
	)
	flag.Var(fields, "field", "Field value as Name=value (repeatable)")
	flag.Parse()

	if *definitionPath == "" {
		log.Fatalf("--definition is required")
	}

	payload, err := os.ReadFile(*definitionPath)
	if err != nil {
		log.Fatalf("read definition: %v", err)
	}
	var definition map[string]any
	if err := json.Unmarshal(payload, &definition); err != nil {
		log.Fatalf("parse definition: %v", err)
	}

	cfg := knowledge.DefaultConfig()
	cfg.Logging.Format = "console"
	if *dsn != "" {
		cfg.Storage.Enabled = true
		cfg.Storage.DSN = *dsn
	}

	module, err := knowledge.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap module: %v", err)
	}
	defer module.Close()

	ctx := context.Background()

	form, err := module.RegisterForm(ctx, definition)
	if err != nil {
		log.Fatalf("register form: %v", err)
	}

	editMode := knowledge.EditMode(strings.ToLower(strings.TrimSpace(*mode)))
	if !editMode.Valid() {
		log.Fatalf("invalid mode %q", *mode)
	}

	values := map[string]string(fields)
	if *markdownFile != "" {
		raw, err := os.ReadFile(*markdownFile)
		if err != nil {
			log.Fatalf("read markdown file: %v", err)
		}
		values[knowledge.RawMarkdownField] = string(raw)
	}

	doc := module.BuildEntryMarkdown(form, *title, values, editMode)

	if *dsn != "" {
		if *space == "" {
			log.Fatalf("--space is required with --db")
		}
		spaceID, err := uuid.Parse(*space)
		if err != nil {
			log.Fatalf("parse space id: %v", err)
		}
		if err := module.Setup(ctx); err != nil {
			log.Fatalf("setup storage: %v", err)
		}

		entry, err := module.Entries().Save(ctx, entries.SaveEntryRequest{
			SpaceID:  spaceID,
			FormName: form.Name,
			Title:    *title,
			Slug:     *slugFlag,
			Values:   values,
			Mode:     editMode,
		})
		if err != nil {
			log.Fatalf("save entry: %v", err)
		}
		fmt.Fprintf(os.Stdout, "Entry: %s\nSlug: %s\nRevision: %d\n\n", entry.ID, entry.Slug, entry.CurrentRevision)
		doc = entry.Markdown
	}

	if *renderHTML {
		html, err := module.Preview(ctx, []byte(doc))
		if err != nil {
			log.Fatalf("render preview: %v", err)
		}
		fmt.Fprintf(os.Stdout, "%s", html)
		return
	}

	fmt.Fprint(os.Stdout, doc)
}

// Package knowledge wires the structured-entry editing stack: a form
// registry, a Markdown synchronization engine, and a bun-backed entry store
// with immutable revision history.
package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/mattn/go-sqlite3"

	"github.com/goliatone/go-knowledge/entries"
	"github.com/goliatone/go-knowledge/forms"
	"github.com/goliatone/go-knowledge/internal/logging"
	"github.com/goliatone/go-knowledge/internal/logging/gologger"
	"github.com/goliatone/go-knowledge/internal/markdown"
	"github.com/goliatone/go-knowledge/pkg/interfaces"
)

// EditMode identifies which editing surface produced a save request.
type EditMode = markdown.EditMode

const (
	EditModeMarkdown = markdown.EditModeMarkdown
	EditModeWebform  = markdown.EditModeWebform
	EditModeChat     = markdown.EditModeChat
)

// RawMarkdownField is the reserved field carrying the whole document when an
// entry is saved from the raw Markdown editor.
const RawMarkdownField = markdown.RawMarkdownField

// FrontMatter is the parsed frontmatter envelope of an entry document.
type FrontMatter = markdown.FrontMatter

// Module is the composition root. Hosts construct one per application and
// reach the form registry and entry service through it.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	logger   interfaces.Logger
	parser   *markdown.GoldmarkParser
	registry forms.Registry
	entries  entries.Service
	db       *bun.DB
	ownsDB   bool
}

// Option customizes module construction.
type Option func(*Module)

// WithLoggerProvider injects the host application's logger provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		if provider != nil {
			m.provider = provider
		}
	}
}

// WithDB injects an existing bun database handle. The module will not close
// an injected handle.
func WithDB(db *bun.DB) Option {
	return func(m *Module) {
		if db != nil {
			m.db = db
		}
	}
}

// WithFormRegistry swaps the default in-memory form registry.
func WithFormRegistry(registry forms.Registry) Option {
	return func(m *Module) {
		if registry != nil {
			m.registry = registry
		}
	}
}

// New constructs the module from configuration.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	for _, opt := range opts {
		opt(m)
	}

	if m.provider == nil && cfg.Logging.Enabled {
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Logging.Level,
			Format:    cfg.Logging.Format,
			AddSource: cfg.Logging.AddSource,
		})
		if err != nil {
			return nil, fmt.Errorf("knowledge: configure logging: %w", err)
		}
		m.provider = provider
	}
	m.logger = logging.ModuleLogger(m.provider, "")

	if m.registry == nil {
		m.registry = forms.NewMemoryRegistry(
			forms.WithLogger(logging.FormsLogger(m.provider)),
		)
	}

	m.parser = markdown.NewGoldmarkParser(cfg.Markdown.Parser)

	if m.db == nil && cfg.Storage.Enabled {
		sqldb, err := sql.Open("sqlite3", cfg.Storage.DSN)
		if err != nil {
			return nil, fmt.Errorf("knowledge: open storage: %w", err)
		}
		m.db = bun.NewDB(sqldb, sqlitedialect.New())
		m.ownsDB = true
	}

	if m.db != nil {
		service, err := entries.NewService(
			m.registry,
			entries.NewBunEntryRepository(m.db),
			entries.NewBunRevisionRepository(m.db),
			entries.WithLogger(logging.EntriesLogger(m.provider)),
		)
		if err != nil {
			return nil, err
		}
		m.entries = service
	}

	return m, nil
}

// Setup provisions storage. It is a no-op when storage is disabled or
// auto-migration is turned off.
func (m *Module) Setup(ctx context.Context) error {
	if m.db == nil || !m.cfg.Storage.AutoMigrate {
		return nil
	}
	if err := entries.CreateTables(ctx, m.db); err != nil {
		return err
	}
	m.logger.Debug("storage schema ready")
	return nil
}

// Close releases the database handle when the module owns it.
func (m *Module) Close() error {
	if m.db != nil && m.ownsDB {
		return m.db.Close()
	}
	return nil
}

// Forms returns the form registry.
func (m *Module) Forms() forms.Registry {
	return m.registry
}

// Entries returns the entry service, or nil when storage is disabled.
func (m *Module) Entries() entries.Service {
	return m.entries
}

// RegisterForm validates a JSON form definition document and registers the
// resulting form.
func (m *Module) RegisterForm(ctx context.Context, definition map[string]any) (forms.Form, error) {
	form, err := forms.FormFromDefinition(definition)
	if err != nil {
		return forms.Form{}, err
	}
	return m.registry.Register(ctx, form)
}

// BuildEntryMarkdown composes the canonical Markdown document for a form,
// title, and field values under the given edit mode. It is pure: callers that
// only need composition never touch storage.
func (m *Module) BuildEntryMarkdown(form forms.Form, title string, values map[string]string, mode EditMode) string {
	return markdown.BuildEntryMarkdown(form, title, values, mode)
}

// ExtractFieldValues reads the current section bodies for a form's fields
// back out of a document.
func (m *Module) ExtractFieldValues(document string, form forms.Form) map[string]string {
	return markdown.ExtractFieldValues(document, form)
}

// Preview renders a Markdown document to HTML for display panes.
func (m *Module) Preview(ctx context.Context, document []byte) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return m.parser.Parse(document)
}

// Parser exposes the preview parser for hosts that render outside the module.
func (m *Module) Parser() interfaces.MarkdownParser {
	return m.parser
}

// IsNotFound reports whether err represents a missing entry or revision.
func IsNotFound(err error) bool {
	return errors.Is(err, entries.ErrEntryNotFound) ||
		errors.Is(err, entries.ErrRevisionNotFound)
}

package entries

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	slug "github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-knowledge/forms"
	"github.com/goliatone/go-knowledge/internal/identity"
	"github.com/goliatone/go-knowledge/internal/logging"
	"github.com/goliatone/go-knowledge/internal/markdown"
	"github.com/goliatone/go-knowledge/pkg/interfaces"
)

// Service exposes the entry editing use cases. Save is the single path the
// editing UI calls on save: it composes the canonical Markdown document for
// the requested edit mode, persists the entry, and appends an immutable
// revision snapshot.
type Service interface {
	Save(ctx context.Context, req SaveEntryRequest) (*Entry, error)
	Compose(ctx context.Context, req SaveEntryRequest) (string, error)
	Get(ctx context.Context, spaceID, entryID uuid.UUID) (*Entry, error)
	GetBySlug(ctx context.Context, spaceID uuid.UUID, slug string) (*Entry, error)
	List(ctx context.Context, spaceID uuid.UUID) ([]*Entry, error)
	ListRevisions(ctx context.Context, spaceID, entryID uuid.UUID) ([]*EntryRevision, error)
	GetRevision(ctx context.Context, spaceID, entryID, revisionID uuid.UUID) (*EntryRevision, error)
	Delete(ctx context.Context, req DeleteEntryRequest) error
}

// EntryRepository persists entry records.
type EntryRepository interface {
	Create(ctx context.Context, record *Entry) (*Entry, error)
	Update(ctx context.Context, record *Entry) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	GetBySlug(ctx context.Context, spaceID uuid.UUID, slug string) (*Entry, error)
	List(ctx context.Context, spaceID uuid.UUID) ([]*Entry, error)
	Delete(ctx context.Context, record *Entry) error
}

// RevisionRepository persists immutable revision snapshots.
type RevisionRepository interface {
	Create(ctx context.Context, record *EntryRevision) (*EntryRevision, error)
	GetByID(ctx context.Context, id uuid.UUID) (*EntryRevision, error)
	ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*EntryRevision, error)
}

// ServiceOption configures the service at construction time.
type ServiceOption func(*service)

// WithLogger attaches a logger to the service.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to stamp records.
func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

type service struct {
	registry  forms.Registry
	entries   EntryRepository
	revisions RevisionRepository
	logger    interfaces.Logger
	now       func() time.Time
}

// NewService constructs the entry service.
func NewService(registry forms.Registry, entryRepo EntryRepository, revisionRepo RevisionRepository, opts ...ServiceOption) (Service, error) {
	if registry == nil {
		return nil, errors.New("entries: form registry is required")
	}
	if entryRepo == nil {
		return nil, errors.New("entries: entry repository is required")
	}
	if revisionRepo == nil {
		return nil, errors.New("entries: revision repository is required")
	}

	svc := &service{
		registry:  registry,
		entries:   entryRepo,
		revisions: revisionRepo,
		logger:    logging.NoOp(),
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// Compose builds the canonical Markdown document for the request without
// persisting anything. It is the preview path for the editing UI.
func (s *service) Compose(ctx context.Context, req SaveEntryRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	form, err := s.registry.Get(ctx, req.FormName)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFormLookupFailed, err)
	}
	return s.compose(form, req), nil
}

func (s *service) Save(ctx context.Context, req SaveEntryRequest) (*Entry, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	form, err := s.registry.Get(ctx, req.FormName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormLookupFailed, err)
	}

	doc := s.compose(form, req)

	entrySlug, err := s.resolveSlug(req)
	if err != nil {
		return nil, err
	}

	entryID := identity.EntryUUID(req.SpaceID, entrySlug)
	now := s.now()

	entry, err := s.entries.GetByID(ctx, entryID)
	switch {
	case err == nil:
		if entry.SpaceID != req.SpaceID {
			return nil, ErrSpaceMismatch
		}
		entry.FormName = form.Name
		entry.Title = req.Title
		entry.Markdown = doc
		entry.CurrentRevision++
		entry.UpdatedAt = now
		if entry, err = s.entries.Update(ctx, entry); err != nil {
			return nil, fmt.Errorf("entries: update entry: %w", err)
		}
	case errors.Is(err, ErrEntryNotFound):
		entry = &Entry{
			ID:              entryID,
			SpaceID:         req.SpaceID,
			FormName:        form.Name,
			Slug:            entrySlug,
			Title:           req.Title,
			Markdown:        doc,
			CurrentRevision: 1,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if entry, err = s.entries.Create(ctx, entry); err != nil {
			return nil, fmt.Errorf("entries: create entry: %w", err)
		}
	default:
		return nil, fmt.Errorf("entries: load entry: %w", err)
	}

	revision := &EntryRevision{
		ID:        identity.RevisionUUID(entry.ID, entry.CurrentRevision),
		EntryID:   entry.ID,
		Revision:  entry.CurrentRevision,
		Mode:      string(req.Mode),
		Markdown:  doc,
		Fields:    snapshotFields(req.Values),
		CreatedAt: now,
	}
	if _, err := s.revisions.Create(ctx, revision); err != nil {
		return nil, fmt.Errorf("entries: record revision: %w", err)
	}

	s.logger.Info("entry saved",
		"entry", entry.ID.String(),
		"space", entry.SpaceID.String(),
		"form", entry.FormName,
		"revision", entry.CurrentRevision,
		"mode", string(req.Mode),
	)
	return entry, nil
}

func (s *service) Get(ctx context.Context, spaceID, entryID uuid.UUID) (*Entry, error) {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.SpaceID != spaceID {
		return nil, &NotFoundError{Resource: "entry", Key: entryID.String()}
	}
	return entry, nil
}

func (s *service) GetBySlug(ctx context.Context, spaceID uuid.UUID, slugValue string) (*Entry, error) {
	return s.entries.GetBySlug(ctx, spaceID, slugValue)
}

func (s *service) List(ctx context.Context, spaceID uuid.UUID) ([]*Entry, error) {
	return s.entries.List(ctx, spaceID)
}

func (s *service) ListRevisions(ctx context.Context, spaceID, entryID uuid.UUID) ([]*EntryRevision, error) {
	if _, err := s.Get(ctx, spaceID, entryID); err != nil {
		return nil, err
	}
	return s.revisions.ListByEntry(ctx, entryID)
}

func (s *service) GetRevision(ctx context.Context, spaceID, entryID, revisionID uuid.UUID) (*EntryRevision, error) {
	if _, err := s.Get(ctx, spaceID, entryID); err != nil {
		return nil, err
	}
	revision, err := s.revisions.GetByID(ctx, revisionID)
	if err != nil {
		return nil, err
	}
	if revision.EntryID != entryID {
		return nil, &NotFoundError{Resource: "entry_revision", Key: revisionID.String()}
	}
	return revision, nil
}

func (s *service) Delete(ctx context.Context, req DeleteEntryRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	entry, err := s.Get(ctx, req.SpaceID, req.EntryID)
	if err != nil {
		return err
	}

	if req.HardDelete {
		if err := s.entries.Delete(ctx, entry); err != nil {
			return fmt.Errorf("entries: delete entry: %w", err)
		}
	} else {
		now := s.now()
		entry.DeletedAt = &now
		entry.UpdatedAt = now
		if _, err := s.entries.Update(ctx, entry); err != nil {
			return fmt.Errorf("entries: soft delete entry: %w", err)
		}
	}

	s.logger.Info("entry deleted", "entry", entry.ID.String(), "hard", req.HardDelete)
	return nil
}

// compose runs the synchronization engine and surfaces frontmatter drift
// between the document's declared form and the requested form. The engine
// never rewrites an existing block, so drift is reported here instead.
func (s *service) compose(form forms.Form, req SaveEntryRequest) string {
	doc := markdown.BuildEntryMarkdown(form, req.Title, req.Values, req.Mode)

	if fm, _, err := markdown.ParseFrontMatter([]byte(doc)); err == nil {
		if fm.Form != "" && !strings.EqualFold(fm.Form, form.Name) {
			s.logger.Warn("frontmatter form drift",
				"declared", fm.Form,
				"requested", form.Name,
			)
		}
	}
	return doc
}

func (s *service) resolveSlug(req SaveEntryRequest) (string, error) {
	candidate := strings.TrimSpace(req.Slug)
	if candidate != "" {
		if !slug.IsValid(candidate) {
			return "", ErrSlugInvalid
		}
		return candidate, nil
	}

	if strings.TrimSpace(req.Title) != "" {
		normalized, err := slug.Normalize(req.Title)
		if err == nil && normalized != "" {
			return normalized, nil
		}
	}

	// No usable title: derive a stable slug from the space and form pair so
	// repeated saves target the same entry.
	return "entry-" + identity.UUID("go-knowledge:untitled:"+req.SpaceID.String()+":"+req.FormName).String()[:8], nil
}

func snapshotFields(values map[string]string) map[string]string {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]string, len(values))
	for name, value := range values {
		out[name] = value
	}
	return out
}

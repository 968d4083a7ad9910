package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BunEntryRepository persists entries through go-repository-bun, with
// space-scoped lookups issued directly against the database.
type BunEntryRepository struct {
	db   *bun.DB
	repo repository.Repository[*Entry]
}

// NewBunEntryRepository constructs an entry repository without caching.
func NewBunEntryRepository(db *bun.DB) *BunEntryRepository {
	return NewBunEntryRepositoryWithCache(db, nil, nil)
}

// NewBunEntryRepositoryWithCache constructs an entry repository with optional
// read caching.
func NewBunEntryRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunEntryRepository {
	base := newEntryRepository(db)
	return &BunEntryRepository{
		db:   db,
		repo: wrapWithCache(base, cacheService, keySerializer),
	}
}

func (r *BunEntryRepository) Create(ctx context.Context, record *Entry) (*Entry, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunEntryRepository) Update(ctx context.Context, record *Entry) (*Entry, error) {
	updated, err := r.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *BunEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "entry", id.String())
	}
	return result, nil
}

func (r *BunEntryRepository) GetBySlug(ctx context.Context, spaceID uuid.UUID, slug string) (*Entry, error) {
	var entry Entry
	err := r.db.NewSelect().
		Model(&entry).
		Where("space_id = ?", spaceID).
		Where("slug = ?", slug).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &NotFoundError{Resource: "entry", Key: slug}
		}
		return nil, fmt.Errorf("entry repository error: %w", err)
	}
	return &entry, nil
}

func (r *BunEntryRepository) List(ctx context.Context, spaceID uuid.UUID) ([]*Entry, error) {
	var records []*Entry
	err := r.db.NewSelect().
		Model(&records).
		Where("space_id = ?", spaceID).
		Where("deleted_at IS NULL").
		Order("updated_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("entry repository error: %w", err)
	}
	return records, nil
}

func (r *BunEntryRepository) Delete(ctx context.Context, record *Entry) error {
	return r.repo.Delete(ctx, record)
}

// BunRevisionRepository persists revision snapshots. Revisions are append
// only; there is no update path.
type BunRevisionRepository struct {
	db   *bun.DB
	repo repository.Repository[*EntryRevision]
}

// NewBunRevisionRepository constructs a revision repository.
func NewBunRevisionRepository(db *bun.DB) *BunRevisionRepository {
	return &BunRevisionRepository{
		db:   db,
		repo: newEntryRevisionRepository(db),
	}
}

func (r *BunRevisionRepository) Create(ctx context.Context, record *EntryRevision) (*EntryRevision, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunRevisionRepository) GetByID(ctx context.Context, id uuid.UUID) (*EntryRevision, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, "entry_revision", id.String())
	}
	return result, nil
}

func (r *BunRevisionRepository) ListByEntry(ctx context.Context, entryID uuid.UUID) ([]*EntryRevision, error) {
	var records []*EntryRevision
	err := r.db.NewSelect().
		Model(&records).
		Where("entry_id = ?", entryID).
		Order("revision ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("entry_revision repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{
			Resource: resource,
			Key:      key,
		}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}

package entries

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func newEntryRepository(db *bun.DB) repository.Repository[*Entry] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Entry]{
		NewRecord: func() *Entry { return &Entry{} },
		GetID: func(e *Entry) uuid.UUID {
			return e.ID
		},
		SetID: func(e *Entry, id uuid.UUID) {
			e.ID = id
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(e *Entry) string {
			return e.Slug
		},
	})
}

func newEntryRevisionRepository(db *bun.DB) repository.Repository[*EntryRevision] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*EntryRevision]{
		NewRecord: func() *EntryRevision { return &EntryRevision{} },
		GetID: func(r *EntryRevision) uuid.UUID {
			return r.ID
		},
		SetID: func(r *EntryRevision, id uuid.UUID) {
			r.ID = id
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(r *EntryRevision) string {
			if r == nil {
				return ""
			}
			return r.ID.String()
		},
	})
}

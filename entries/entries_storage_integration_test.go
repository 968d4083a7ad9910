package entries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-knowledge/entries"
	"github.com/goliatone/go-knowledge/forms"
	"github.com/goliatone/go-knowledge/internal/markdown"
	"github.com/goliatone/go-knowledge/pkg/testsupport"
)

func newBunFixture(t *testing.T) (entries.Service, *bun.DB) {
	t.Helper()

	sqlDB, err := testsupport.NewSQLiteMemoryDB()
	if err != nil {
		t.Fatalf("new sqlite db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	bunDB := bun.NewDB(sqlDB, sqlitedialect.New())
	bunDB.SetMaxOpenConns(1)

	ctx := context.Background()
	if err := entries.CreateTables(ctx, bunDB); err != nil {
		t.Fatalf("create tables: %v", err)
	}

	registry := forms.NewMemoryRegistry()
	if _, err := registry.Register(ctx, meetingForm()); err != nil {
		t.Fatalf("register form: %v", err)
	}

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("new cache service: %v", err)
	}
	keySerializer := repocache.NewDefaultKeySerializer()

	svc, err := entries.NewService(
		registry,
		entries.NewBunEntryRepositoryWithCache(bunDB, cacheService, keySerializer),
		entries.NewBunRevisionRepository(bunDB),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, bunDB
}

func TestEntryService_WithBunStorageAndCache(t *testing.T) {
	svc, _ := newBunFixture(t)
	ctx := context.Background()
	spaceID := uuid.MustParse("00000000-0000-0000-0000-000000000310")

	created, err := svc.Save(ctx, entries.SaveEntryRequest{
		SpaceID:  spaceID,
		FormName: "Meeting",
		Title:    "Quarterly Review",
		Values: map[string]string{
			"Date":   "2026-06-30",
			"Status": "open",
		},
		Mode: markdown.EditModeWebform,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	if _, err := svc.Get(ctx, spaceID, created.ID); err != nil {
		t.Fatalf("first get: %v", err)
	}
	if _, err := svc.Get(ctx, spaceID, created.ID); err != nil {
		t.Fatalf("cached get: %v", err)
	}

	bySlug, err := svc.GetBySlug(ctx, spaceID, "quarterly-review")
	if err != nil {
		t.Fatalf("get by slug: %v", err)
	}
	if bySlug.ID != created.ID {
		t.Fatalf("slug lookup returned %s, want %s", bySlug.ID, created.ID)
	}

	updated, err := svc.Save(ctx, entries.SaveEntryRequest{
		SpaceID:  spaceID,
		FormName: "Meeting",
		Title:    "Quarterly Review",
		Values: map[string]string{
			"Date":   "2026-06-30",
			"Status": "closed",
		},
		Mode: markdown.EditModeWebform,
	})
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if updated.ID != created.ID {
		t.Fatalf("second save created new entry")
	}
	if updated.CurrentRevision != 2 {
		t.Fatalf("current revision = %d, want 2", updated.CurrentRevision)
	}

	revisions, err := svc.ListRevisions(ctx, spaceID, created.ID)
	if err != nil {
		t.Fatalf("list revisions: %v", err)
	}
	if len(revisions) != 2 {
		t.Fatalf("revisions = %d, want 2", len(revisions))
	}
	if revisions[0].Revision != 1 || revisions[1].Revision != 2 {
		t.Fatalf("revision order = %d, %d", revisions[0].Revision, revisions[1].Revision)
	}
	if revisions[1].Fields["Status"] != "closed" {
		t.Fatalf("snapshot fields = %v", revisions[1].Fields)
	}

	fetched, err := svc.GetRevision(ctx, spaceID, created.ID, revisions[0].ID)
	if err != nil {
		t.Fatalf("get revision: %v", err)
	}
	if fetched.Revision != 1 {
		t.Fatalf("revision = %d, want 1", fetched.Revision)
	}
}

func TestEntryService_BunStorageListAndDelete(t *testing.T) {
	svc, _ := newBunFixture(t)
	ctx := context.Background()
	spaceID := uuid.MustParse("00000000-0000-0000-0000-000000000320")

	first, err := svc.Save(ctx, entries.SaveEntryRequest{
		SpaceID:  spaceID,
		FormName: "Meeting",
		Title:    "Kickoff",
		Mode:     markdown.EditModeWebform,
	})
	if err != nil {
		t.Fatalf("save kickoff: %v", err)
	}
	if _, err := svc.Save(ctx, entries.SaveEntryRequest{
		SpaceID:  spaceID,
		FormName: "Meeting",
		Title:    "Retrospective",
		Mode:     markdown.EditModeWebform,
	}); err != nil {
		t.Fatalf("save retrospective: %v", err)
	}

	listed, err := svc.List(ctx, spaceID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("listed = %d, want 2", len(listed))
	}

	if err := svc.Delete(ctx, entries.DeleteEntryRequest{SpaceID: spaceID, EntryID: first.ID}); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	listed, err = svc.List(ctx, spaceID)
	if err != nil {
		t.Fatalf("list after delete: %v", err)
	}
	if len(listed) != 1 || listed[0].Slug != "retrospective" {
		t.Fatalf("unexpected listing after soft delete: %+v", listed)
	}

	otherSpace := uuid.MustParse("00000000-0000-0000-0000-000000000330")
	if _, err := svc.GetBySlug(ctx, otherSpace, "retrospective"); !errors.Is(err, entries.ErrEntryNotFound) {
		t.Fatalf("err = %v, want ErrEntryNotFound for foreign space", err)
	}
}

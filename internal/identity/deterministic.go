package identity

import (
	"fmt"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// FormUUID derives the identity of a registered form definition.
func FormUUID(name string) uuid.UUID {
	return UUID("go-knowledge:form:" + strings.ToLower(strings.TrimSpace(name)))
}

// EntryUUID derives the identity of an entry from its space and slug.
func EntryUUID(spaceID uuid.UUID, slug string) uuid.UUID {
	return UUID("go-knowledge:entry:" + spaceID.String() + ":" + strings.ToLower(strings.TrimSpace(slug)))
}

// RevisionUUID derives the identity of an entry revision. Revision numbers are
// unique per entry, so the pair is a stable key.
func RevisionUUID(entryID uuid.UUID, revision int) uuid.UUID {
	return UUID(fmt.Sprintf("go-knowledge:entry_revision:%s:%d", entryID.String(), revision))
}

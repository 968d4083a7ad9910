package entries

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-knowledge/internal/markdown"
)

// Entry is the canonical persisted record for a knowledge entry. Markdown
// holds the one canonical document produced by the synchronization engine.
type Entry struct {
	bun.BaseModel `bun:"table:entries,alias:e"`

	ID              uuid.UUID        `bun:",pk,type:uuid" json:"id"`
	SpaceID         uuid.UUID        `bun:"space_id,notnull,type:uuid" json:"space_id"`
	FormName        string           `bun:"form_name,notnull" json:"form_name"`
	Slug            string           `bun:"slug,notnull" json:"slug"`
	Title           string           `bun:"title,notnull" json:"title"`
	Markdown        string           `bun:"markdown,notnull" json:"markdown"`
	CurrentRevision int              `bun:"current_revision,notnull,default:1" json:"current_revision"`
	DeletedAt       *time.Time       `bun:"deleted_at,nullzero" json:"deleted_at,omitempty"`
	CreatedAt       time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at"`
	Revisions       []*EntryRevision `bun:"rel:has-many,join:id=entry_id" json:"revisions,omitempty"`
}

// EntryRevision captures an immutable snapshot of an entry at save time,
// including the field values and edit mode that produced the document.
type EntryRevision struct {
	bun.BaseModel `bun:"table:entry_revisions,alias:er"`

	ID        uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	EntryID   uuid.UUID         `bun:"entry_id,notnull,type:uuid" json:"entry_id"`
	Revision  int               `bun:"revision,notnull" json:"revision"`
	Mode      string            `bun:"mode,notnull" json:"mode"`
	Markdown  string            `bun:"markdown,notnull" json:"markdown"`
	Fields    map[string]string `bun:"fields,type:jsonb" json:"fields,omitempty"`
	CreatedAt time.Time         `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`

	Entry *Entry `bun:"rel:belongs-to,join:entry_id=id" json:"entry,omitempty"`
}

// SaveEntryRequest captures a single edit/save operation. Values and the raw
// markdown override are transient; only the canonical document and the
// revision snapshot are persisted.
type SaveEntryRequest struct {
	SpaceID  uuid.UUID
	FormName string
	Title    string
	Slug     string
	Values   map[string]string
	Mode     markdown.EditMode
}

// Validate checks the request before any composition or storage work happens.
func (r SaveEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SpaceID, validation.By(requireUUID)),
		validation.Field(&r.FormName, validation.Required, validation.By(requireNonBlank("form name"))),
		validation.Field(&r.Mode, validation.Required, validation.By(requireMode)),
	)
}

// DeleteEntryRequest captures the information required to remove an entry.
type DeleteEntryRequest struct {
	SpaceID    uuid.UUID
	EntryID    uuid.UUID
	HardDelete bool
}

// Validate checks the delete request.
func (r DeleteEntryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.SpaceID, validation.By(requireUUID)),
		validation.Field(&r.EntryID, validation.By(requireUUID)),
	)
}

func requireUUID(value any) error {
	id, ok := value.(uuid.UUID)
	if !ok || id == uuid.Nil {
		return validation.NewError("knowledge.entries.id_required", "identifier is required")
	}
	return nil
}

func requireNonBlank(label string) validation.RuleFunc {
	return func(value any) error {
		text, _ := value.(string)
		if strings.TrimSpace(text) == "" {
			return validation.NewError("knowledge.entries.value_required", label+" is required")
		}
		return nil
	}
}

func requireMode(value any) error {
	mode, ok := value.(markdown.EditMode)
	if !ok || !mode.Valid() {
		return validation.NewError("knowledge.entries.mode_invalid", "edit mode must be markdown, webform, or chat")
	}
	return nil
}

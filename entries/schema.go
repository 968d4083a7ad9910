package entries

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// CreateTables provisions the entry storage schema. It is safe to call on
// every startup.
func CreateTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*Entry)(nil),
		(*EntryRevision)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("entries: create table for %T: %w", model, err)
		}
	}
	return nil
}

package entries

import (
	"errors"
	"fmt"
)

var (
	ErrEntryNotFound    = errors.New("entries: entry not found")
	ErrRevisionNotFound = errors.New("entries: revision not found")
	ErrSlugInvalid      = errors.New("entries: slug contains invalid characters")
	ErrSpaceMismatch    = errors.New("entries: entry does not belong to space")
	ErrFormLookupFailed = errors.New("entries: form lookup failed")
)

// NotFoundError carries the resource and key behind a missing-record failure.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// Unwrap maps the typed error onto the package sentinels so callers can use
// errors.Is without inspecting the resource name.
func (e *NotFoundError) Unwrap() error {
	switch e.Resource {
	case "entry_revision":
		return ErrRevisionNotFound
	default:
		return ErrEntryNotFound
	}
}

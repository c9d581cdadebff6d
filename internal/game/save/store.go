package save

import "context"

// Store persists documents by slot.
type Store interface {
	// Save creates or replaces the document in slot.
	Save(ctx context.Context, slot string, doc *Document) error
	// Load returns the document in slot, or an error wrapping
	// ErrSaveFileNotFound when the slot is empty.
	Load(ctx context.Context, slot string) (*Document, error)
	// Delete removes slot, or returns an error wrapping ErrSaveFileNotFound.
	Delete(ctx context.Context, slot string) error
	// List returns every occupied slot in ascending order.
	List(ctx context.Context) ([]string, error)
}

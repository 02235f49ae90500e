package repository

import (
	"context"

	"github.com/nexel-studio/agency-api/internal/model"
)

// WorkRepository provides access to portfolio work entries.
type WorkRepository interface {
	// List returns all entries in storage order, without image payloads.
	List(ctx context.Context) ([]model.Work, error)
	// Create inserts a new entry, assigning the next sequence id in the same
	// statement. ErrAlreadyExists when a concurrent insert won the id.
	Create(ctx context.Context, w *model.NewWork) (int64, error)
	// GetImage returns the stored image payload and content type for an entry.
	GetImage(ctx context.Context, id int64) ([]byte, string, error)
	// Delete removes at most one entry and reports whether a row matched.
	Delete(ctx context.Context, id int64) (bool, error)
}

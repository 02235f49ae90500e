package repository

import (
	"context"

	"github.com/gofrs/uuid/v5"
	"github.com/nexel-studio/agency-api/internal/model"
)

// ContactRepository provides access to inbound contact messages.
type ContactRepository interface {
	// Create persists a new submission.
	Create(ctx context.Context, m *model.ContactMessage) error
	// List returns messages newest-first according to the options.
	List(ctx context.Context, opts model.ContactListOptions) ([]model.ContactMessage, error)
	// MarkSeen flags a message as read; ErrNotFound when the id is unknown.
	MarkSeen(ctx context.Context, id uuid.UUID) error
	// SetReply stores the reply triple once; ErrAlreadyReplied on a second
	// attempt, ErrNotFound when the id is unknown.
	SetReply(ctx context.Context, id uuid.UUID, r model.Reply) error
	// Get loads a single message by id.
	Get(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error)
}

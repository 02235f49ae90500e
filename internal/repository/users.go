// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/nexel-studio/agency-api/internal/model"
)

// UserRepository provides access to back-office accounts.
type UserRepository interface {
	// Create inserts a new account; ErrAlreadyExists on duplicate handle/email.
	Create(ctx context.Context, u *model.User) error
	// GetByIdentifier loads an account by handle or email (either may be empty).
	GetByIdentifier(ctx context.Context, handle, email string) (*model.User, error)
	// Exists reports whether an account with the handle or email already exists.
	Exists(ctx context.Context, handle, email string) (bool, error)
}

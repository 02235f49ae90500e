package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/model"
)

// UserRepo implements UserRepository using PostgreSQL.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new account row.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `
INSERT INTO users (id, handle, email, name, pwd_hash, salt)
VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Pool.Exec(ctx, q, u.ID, u.Handle, u.Email, u.Name, u.PwdHash, u.Salt)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// Exists reports whether an account with the handle or email is taken.
// Empty identifiers never match.
func (r *UserRepo) Exists(ctx context.Context, handle, email string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1 FROM users
  WHERE ($1 <> '' AND handle = $1) OR ($2 <> '' AND email = $2)
)`
	var exists bool
	if err := r.db.Pool.QueryRow(ctx, q, handle, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// GetByIdentifier selects an account matching either the handle or the email.
func (r *UserRepo) GetByIdentifier(ctx context.Context, handle, email string) (*model.User, error) {
	const q = `
SELECT id, handle, email, name, pwd_hash, salt, created_at
FROM users
WHERE ($1 <> '' AND handle = $1) OR ($2 <> '' AND email = $2)
LIMIT 1`
	row := r.db.Pool.QueryRow(ctx, q, handle, email)
	var u model.User
	if err := row.Scan(&u.ID, &u.Handle, &u.Email, &u.Name, &u.PwdHash, &u.Salt, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

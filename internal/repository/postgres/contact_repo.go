package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/model"
)

// ContactRepo implements ContactRepository using PostgreSQL.
type ContactRepo struct{ db *DB }

// NewContactRepo constructs a contact-message repository.
func NewContactRepo(db *DB) *ContactRepo { return &ContactRepo{db: db} }

// Create persists a new submission.
func (r *ContactRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	const q = `
INSERT INTO contact_messages (id, name, email, mobile, description)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Pool.Exec(ctx, q, m.ID, m.Name, m.Email, m.Mobile, m.Description)
	if isUniqueViolation(err) {
		return errs.ErrAlreadyExists
	}
	return err
}

// List returns messages newest-first, optionally filtered by read state.
func (r *ContactRepo) List(ctx context.Context, opts model.ContactListOptions) ([]model.ContactMessage, error) {
	const all = `
SELECT id, name, email, mobile, description, seen,
       reply_subject, reply_body, reply_at, created_at
FROM contact_messages
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`
	const bySeen = `
SELECT id, name, email, mobile, description, seen,
       reply_subject, reply_body, reply_at, created_at
FROM contact_messages
WHERE seen = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2`

	var (
		rows pgx.Rows
		err  error
	)
	if opts.Seen == nil {
		rows, err = r.db.Pool.Query(ctx, all, opts.Limit, opts.Offset)
	} else {
		rows, err = r.db.Pool.Query(ctx, bySeen, opts.Limit, opts.Offset, *opts.Seen)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ContactMessage
	for rows.Next() {
		m, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// Get loads a single message by id.
func (r *ContactRepo) Get(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	const q = `
SELECT id, name, email, mobile, description, seen,
       reply_subject, reply_body, reply_at, created_at
FROM contact_messages
WHERE id = $1`
	m, err := scanContact(r.db.Pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// MarkSeen flags a message as read.
func (r *ContactRepo) MarkSeen(ctx context.Context, id uuid.UUID) error {
	const q = `UPDATE contact_messages SET seen = true WHERE id = $1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// SetReply stores the reply triple only if the message has none yet.
func (r *ContactRepo) SetReply(ctx context.Context, id uuid.UUID, rep model.Reply) error {
	const q = `
UPDATE contact_messages
SET reply_subject = $2, reply_body = $3, reply_at = $4, seen = true
WHERE id = $1 AND reply_at IS NULL`
	tag, err := r.db.Pool.Exec(ctx, q, id, rep.Subject, rep.Body, rep.SentAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Distinguish "unknown id" from "reply already set".
		if _, gerr := r.Get(ctx, id); gerr != nil {
			return gerr
		}
		return errs.ErrAlreadyReplied
	}
	return nil
}

// scanContact reads one row into a ContactMessage, folding the nullable
// reply columns into the all-or-nothing Reply triple.
func scanContact(row pgx.Row) (*model.ContactMessage, error) {
	var (
		m       model.ContactMessage
		subject *string
		body    *string
		sentAt  *time.Time
	)
	if err := row.Scan(&m.ID, &m.Name, &m.Email, &m.Mobile, &m.Description, &m.Seen,
		&subject, &body, &sentAt, &m.CreatedAt); err != nil {
		return nil, err
	}
	if sentAt != nil && subject != nil && body != nil {
		m.Reply = &model.Reply{Subject: *subject, Body: *body, SentAt: *sentAt}
	}
	return &m, nil
}

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/model"
)

// WorkRepo implements WorkRepository using PostgreSQL.
type WorkRepo struct{ db *DB }

// NewWorkRepo constructs a work repository.
func NewWorkRepo(db *DB) *WorkRepo { return &WorkRepo{db: db} }

// List returns all entries in id order. Image payloads are not loaded here;
// the public listing serves them from a separate endpoint.
func (r *WorkRepo) List(ctx context.Context) ([]model.Work, error) {
	const q = `
SELECT id, title, client, description, category_id, results, tech, image_type,
       duration, color, bg_color, created_at
FROM works
ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Work
	for rows.Next() {
		var w model.Work
		if err = rows.Scan(&w.ID, &w.Title, &w.Client, &w.Description, &w.CategoryID,
			&w.Results, &w.Tech, &w.ImageType, &w.Duration, &w.Color, &w.BgColor, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Create assigns max(id)+1 and inserts in a single statement. Under
// concurrency two inserts can still compute the same id; the primary key
// arbitrates and the loser gets ErrAlreadyExists for the service to retry.
func (r *WorkRepo) Create(ctx context.Context, w *model.NewWork) (int64, error) {
	const q = `
INSERT INTO works (id, title, client, description, category_id, results, tech,
                   image, image_type, duration, color, bg_color)
SELECT COALESCE(MAX(id), 0) + 1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
FROM works
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q,
		w.Title, w.Client, w.Description, w.CategoryID, w.Results, w.Tech,
		w.Image, w.ImageType, w.Duration, w.Color, w.BgColor,
	).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errs.ErrAlreadyExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetImage returns the stored image and its content type.
func (r *WorkRepo) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	const q = `SELECT image, image_type FROM works WHERE id=$1`
	var (
		img   []byte
		ctype string
	)
	if err := r.db.Pool.QueryRow(ctx, q, id).Scan(&img, &ctype); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", errs.ErrNotFound
		}
		return nil, "", err
	}
	return img, ctype, nil
}

// Delete removes at most one entry and reports whether a row matched.
func (r *WorkRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM works WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

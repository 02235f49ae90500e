package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/model"
	"github.com/nexel-studio/agency-api/internal/repository"
)

// Default theme pair applied when the client sends none.
const (
	DefaultColor   = "#24CFA6"
	DefaultBgColor = "#212121"
)

// createAttempts bounds the retry loop when concurrent creates race for the
// same sequence id.
const createAttempts = 3

// WorkService defines operations over portfolio work entries.
type WorkService interface {
	// List returns all entries in storage order (no image payloads).
	List(ctx context.Context) ([]model.Work, error)
	// Create validates and persists a new entry, returning its sequence id.
	Create(ctx context.Context, nw model.NewWork) (int64, error)
	// GetImage returns a stored image and its content type.
	GetImage(ctx context.Context, id int64) ([]byte, string, error)
	// Delete removes an entry by id; deleting an absent id is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}

type WorkServiceImpl struct {
	repo          repository.WorkRepository
	maxImageBytes int64
}

// NewWorkService constructs WorkService with the configured upload cap.
func NewWorkService(repo repository.WorkRepository, maxImageBytes int64) *WorkServiceImpl {
	if maxImageBytes <= 0 {
		maxImageBytes = 10 << 20
	}
	return &WorkServiceImpl{repo: repo, maxImageBytes: maxImageBytes}
}

// List returns all entries in storage order.
func (s *WorkServiceImpl) List(ctx context.Context) ([]model.Work, error) {
	return s.repo.List(ctx)
}

// Create validates the entry and retries on sequence-id collisions, with the
// unique constraint as the arbiter.
func (s *WorkServiceImpl) Create(ctx context.Context, nw model.NewWork) (int64, error) {
	if err := s.validate(&nw); err != nil {
		return 0, err
	}
	if nw.Color == "" {
		nw.Color = DefaultColor
	}
	if nw.BgColor == "" {
		nw.BgColor = DefaultBgColor
	}

	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		id, err := s.repo.Create(ctx, &nw)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, errs.ErrAlreadyExists) {
			return 0, err
		}
		lastErr = err
	}
	return 0, lastErr
}

// GetImage returns a stored image payload.
func (s *WorkServiceImpl) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	if id <= 0 {
		return nil, "", errs.ErrNotFound
	}
	return s.repo.GetImage(ctx, id)
}

// Delete is idempotent: a missing id reports success with deleted=false.
func (s *WorkServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, fmt.Errorf("%w: id must be a positive number", errs.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func (s *WorkServiceImpl) validate(nw *model.NewWork) error {
	switch {
	case nw.Title == "":
		return fmt.Errorf("%w: title is required", errs.ErrValidation)
	case nw.Client == "":
		return fmt.Errorf("%w: client is required", errs.ErrValidation)
	case nw.Description == "":
		return fmt.Errorf("%w: description is required", errs.ErrValidation)
	case nw.Duration == "":
		return fmt.Errorf("%w: duration is required", errs.ErrValidation)
	}
	if nw.CategoryID < 1 || nw.CategoryID > 9 {
		return fmt.Errorf("%w: categoryId must be between 1 and 9", errs.ErrValidation)
	}
	if n := len(nw.Results); n < 1 || n > 10 {
		return fmt.Errorf("%w: results must contain 1 to 10 entries", errs.ErrValidation)
	}
	if n := len(nw.Tech); n < 1 || n > 10 {
		return fmt.Errorf("%w: tech must contain 1 to 10 entries", errs.ErrValidation)
	}
	if len(nw.Image) == 0 {
		return fmt.Errorf("%w: image file is required", errs.ErrValidation)
	}
	if int64(len(nw.Image)) > s.maxImageBytes {
		return fmt.Errorf("%w: image exceeds %d bytes", errs.ErrValidation, s.maxImageBytes)
	}
	return nil
}

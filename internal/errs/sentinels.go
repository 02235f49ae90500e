// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels shared by repository, service, and HTTP layers.
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation
	// (handle/email taken, sequence id collision).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication/authorization.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited indicates temporary login lock due to rate limiting.
	ErrRateLimited = errors.New("rate limited")

	// ErrValidation indicates input that fails a declared constraint.
	// Wrap it with field details: fmt.Errorf("%w: categoryId out of range", errs.ErrValidation).
	ErrValidation = errors.New("validation failed")

	// ErrAlreadyReplied indicates a contact message already carries a reply.
	ErrAlreadyReplied = errors.New("already replied")
)

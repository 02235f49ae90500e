// Package service contains application services for auth, works, and contact.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/golang-jwt/jwt/v5"

	pkgcrypto "github.com/nexel-studio/agency-api/internal/crypto"
	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/limiter"
	"github.com/nexel-studio/agency-api/internal/model"
	"github.com/nexel-studio/agency-api/internal/repository"
)

// Claims are the JWT claims embedded in issued bearer tokens.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"` // display name
}

// AuthService defines registration and login operations.
type AuthService interface {
	// Register creates a new back-office account with secure password hashing.
	Register(ctx context.Context, handle, name, email, password string) (userID string, err error)
	// LoginWithIP applies rate limiting and authenticates by handle or email.
	LoginWithIP(ctx context.Context, handle, email, password, ip string) (model.Session, model.User, error)
}

type AuthServiceImpl struct {
	users     repository.UserRepository
	signKey   []byte
	accessTTL time.Duration
	lim       limiter.Limiter
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, signKey []byte, accessTTL time.Duration, lim limiter.Limiter) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, signKey: signKey, accessTTL: accessTTL, lim: lim}
}

// Register creates an account after checking both identifiers are free.
func (s *AuthServiceImpl) Register(ctx context.Context, handle, name, email, password string) (string, error) {
	if handle == "" || name == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: user_id, name, email and password are required", errs.ErrValidation)
	}

	taken, err := s.users.Exists(ctx, handle, email)
	if err != nil {
		return "", err
	}
	if taken {
		return "", errs.ErrAlreadyExists
	}

	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	salt, err := pkgcrypto.RandBytes(pkgcrypto.SaltLen)
	if err != nil {
		return "", err
	}

	u := &model.User{
		ID:      uid,
		Handle:  handle,
		Email:   email,
		Name:    name,
		PwdHash: pkgcrypto.HashPassword([]byte(password), salt),
		Salt:    salt,
	}
	// The unique index is the arbiter for a concurrent registration race;
	// the existence check above only covers the common case.
	if err := s.users.Create(ctx, u); err != nil {
		return "", err
	}
	return uid.String(), nil
}

// LoginWithIP authenticates with rate limiting by (handle, ip).
// Unknown identifier and wrong password are indistinguishable to the caller.
func (s *AuthServiceImpl) LoginWithIP(ctx context.Context, handle, email, password, ip string) (model.Session, model.User, error) {
	if password == "" || (handle == "" && email == "") {
		return model.Session{}, model.User{}, fmt.Errorf("%w: identifier and password are required", errs.ErrValidation)
	}

	limKey := handle
	if limKey == "" {
		limKey = email
	}
	ipHash := limiter.HashIP(ip)

	allowed, _, err := s.lim.Allow(ctx, limKey, ipHash)
	if err != nil {
		return model.Session{}, model.User{}, err
	}
	if !allowed {
		return model.Session{}, model.User{}, errs.ErrRateLimited
	}

	u, err := s.users.GetByIdentifier(ctx, handle, email)
	if err != nil || !pkgcrypto.VerifyPassword([]byte(password), u.Salt, u.PwdHash) {
		if blocked, _, ferr := s.lim.Failure(ctx, limKey, ipHash); ferr == nil && blocked {
			return model.Session{}, model.User{}, errs.ErrRateLimited
		}
		if err != nil && !errors.Is(err, errs.ErrNotFound) {
			return model.Session{}, model.User{}, err
		}
		return model.Session{}, model.User{}, errs.ErrUnauthorized
	}

	// Success: reset counters (best-effort).
	_ = s.lim.Success(ctx, limKey, ipHash)

	token, exp, err := s.issueToken(u.Handle, u.Name)
	if err != nil {
		return model.Session{}, model.User{}, err
	}
	return model.Session{Token: token, ExpiresAt: exp}, *u, nil
}

// issueToken creates a signed HS256 JWT carrying the handle and display name.
func (s *AuthServiceImpl) issueToken(handle, name string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(s.accessTTL)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   handle,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Name: name,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(s.signKey)
	return signed, exp, err
}

package service

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/nexel-studio/agency-api/internal/errs"
	mailer "github.com/nexel-studio/agency-api/internal/mail"
	"github.com/nexel-studio/agency-api/internal/model"
	"github.com/nexel-studio/agency-api/internal/repository"
)

// Inbox paging bounds.
const (
	defaultInboxLimit = 50
	maxInboxLimit     = 200
)

// ContactService defines the contact-form and back-office inbox operations.
type ContactService interface {
	// Submit persists a submission, then fires the confirmation and owner
	// notification emails best-effort.
	Submit(ctx context.Context, name, email, mobile, desc string) (uuid.UUID, error)
	// List returns inbox messages newest-first.
	List(ctx context.Context, opts model.ContactListOptions) ([]model.ContactMessage, error)
	// MarkSeen flags a message as read.
	MarkSeen(ctx context.Context, id uuid.UUID) error
	// Reply stores the reply triple and emails the submitter best-effort.
	Reply(ctx context.Context, id uuid.UUID, subject, body string) error
}

type ContactServiceImpl struct {
	repo   repository.ContactRepository
	mailer mailer.Mailer
	logger *zap.Logger
}

// NewContactService constructs ContactService.
func NewContactService(repo repository.ContactRepository, m mailer.Mailer, logger *zap.Logger) *ContactServiceImpl {
	return &ContactServiceImpl{repo: repo, mailer: m, logger: logger}
}

// Submit persists first; email is a notification side effect and a mail
// failure never fails the submission.
func (s *ContactServiceImpl) Submit(ctx context.Context, name, email, mobile, desc string) (uuid.UUID, error) {
	if name == "" || email == "" || desc == "" {
		return uuid.Nil, fmt.Errorf("%w: name, email and desc are required", errs.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return uuid.Nil, fmt.Errorf("%w: email address is not valid", errs.ErrValidation)
	}

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	msg := &model.ContactMessage{
		ID:          id,
		Name:        name,
		Email:       email,
		Mobile:      mobile,
		Description: desc,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return uuid.Nil, err
	}

	if err := s.mailer.ContactConfirmation(msg); err != nil {
		s.logger.Warn("contact confirmation mail failed", zap.String("to", msg.Email), zap.Error(err))
	}
	if err := s.mailer.OwnerNotification(msg); err != nil {
		s.logger.Warn("owner notification mail failed", zap.Error(err))
	}
	return id, nil
}

// List returns inbox messages with paging defaults applied.
func (s *ContactServiceImpl) List(ctx context.Context, opts model.ContactListOptions) ([]model.ContactMessage, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultInboxLimit
	}
	if opts.Limit > maxInboxLimit {
		opts.Limit = maxInboxLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.repo.List(ctx, opts)
}

// MarkSeen flags a message as read.
func (s *ContactServiceImpl) MarkSeen(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errs.ErrNotFound
	}
	return s.repo.MarkSeen(ctx, id)
}

// Reply stores the triple once, then delivers it best-effort.
func (s *ContactServiceImpl) Reply(ctx context.Context, id uuid.UUID, subject, body string) error {
	if subject == "" || body == "" {
		return fmt.Errorf("%w: subject and body are required", errs.ErrValidation)
	}
	if id == uuid.Nil {
		return errs.ErrNotFound
	}

	msg, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	rep := model.Reply{Subject: subject, Body: body, SentAt: time.Now()}
	if err := s.repo.SetReply(ctx, id, rep); err != nil {
		return err
	}

	if err := s.mailer.Reply(msg.Email, rep); err != nil {
		s.logger.Warn("reply mail failed", zap.String("to", msg.Email), zap.Error(err))
	}
	return nil
}

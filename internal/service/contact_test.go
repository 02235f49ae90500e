package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/model"
)

type fakeContacts struct {
	created []*model.ContactMessage
	byID    map[uuid.UUID]*model.ContactMessage

	listOpts model.ContactListOptions

	setReplyErr error
	lastReply   model.Reply
}

func newFakeContacts() *fakeContacts {
	return &fakeContacts{byID: map[uuid.UUID]*model.ContactMessage{}}
}

func (f *fakeContacts) Create(ctx context.Context, m *model.ContactMessage) error {
	f.created = append(f.created, m)
	f.byID[m.ID] = m
	return nil
}

func (f *fakeContacts) List(ctx context.Context, opts model.ContactListOptions) ([]model.ContactMessage, error) {
	f.listOpts = opts
	return nil, nil
}

func (f *fakeContacts) MarkSeen(ctx context.Context, id uuid.UUID) error {
	m, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	m.Seen = true
	return nil
}

func (f *fakeContacts) SetReply(ctx context.Context, id uuid.UUID, rep model.Reply) error {
	if f.setReplyErr != nil {
		return f.setReplyErr
	}
	m, ok := f.byID[id]
	if !ok {
		return errs.ErrNotFound
	}
	if m.Reply != nil {
		return errs.ErrAlreadyReplied
	}
	m.Reply = &rep
	m.Seen = true
	f.lastReply = rep
	return nil
}

func (f *fakeContacts) Get(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	m, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return m, nil
}

type fakeMailer struct {
	confirmations int
	notifications int
	replies       []string // recipients
	err           error
}

func (f *fakeMailer) ContactConfirmation(m *model.ContactMessage) error {
	f.confirmations++
	return f.err
}

func (f *fakeMailer) OwnerNotification(m *model.ContactMessage) error {
	f.notifications++
	return f.err
}

func (f *fakeMailer) Reply(to string, rep model.Reply) error {
	f.replies = append(f.replies, to)
	return f.err
}

func newContact(repo *fakeContacts, m *fakeMailer) *ContactServiceImpl {
	return NewContactService(repo, m, zap.NewNop())
}

func TestSubmit_PersistsAndNotifies(t *testing.T) {
	repo := newFakeContacts()
	ml := &fakeMailer{}
	svc := newContact(repo, ml)

	id, err := svc.Submit(context.Background(), "Jane", "jane@x.com", "+1002003", "need a site")
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	require.Len(t, repo.created, 1)
	require.Equal(t, "jane@x.com", repo.created[0].Email)
	require.Equal(t, 1, ml.confirmations)
	require.Equal(t, 1, ml.notifications)
}

func TestSubmit_MailFailureDoesNotFailSubmission(t *testing.T) {
	repo := newFakeContacts()
	ml := &fakeMailer{err: errors.New("smtp down")}
	svc := newContact(repo, ml)

	_, err := svc.Submit(context.Background(), "Jane", "jane@x.com", "", "need a site")
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
}

func TestSubmit_Validation(t *testing.T) {
	svc := newContact(newFakeContacts(), &fakeMailer{})
	for _, tc := range []struct{ name, email, desc string }{
		{"", "jane@x.com", "d"},
		{"Jane", "", "d"},
		{"Jane", "jane@x.com", ""},
		{"Jane", "not-an-email", "d"},
		{"Jane", "a@b@c", "d"},
	} {
		_, err := svc.Submit(context.Background(), tc.name, tc.email, "", tc.desc)
		require.ErrorIs(t, err, errs.ErrValidation, "name=%q email=%q desc=%q", tc.name, tc.email, tc.desc)
	}
}

func TestList_ClampsPaging(t *testing.T) {
	repo := newFakeContacts()
	svc := newContact(repo, &fakeMailer{})
	ctx := context.Background()

	_, err := svc.List(ctx, model.ContactListOptions{})
	require.NoError(t, err)
	require.Equal(t, defaultInboxLimit, repo.listOpts.Limit)

	_, err = svc.List(ctx, model.ContactListOptions{Limit: 10_000, Offset: -5})
	require.NoError(t, err)
	require.Equal(t, maxInboxLimit, repo.listOpts.Limit)
	require.Equal(t, 0, repo.listOpts.Offset)
}

func TestReply_StoresAndMails(t *testing.T) {
	repo := newFakeContacts()
	ml := &fakeMailer{}
	svc := newContact(repo, ml)

	id, err := svc.Submit(context.Background(), "Jane", "jane@x.com", "", "need a site")
	require.NoError(t, err)

	require.NoError(t, svc.Reply(context.Background(), id, "Re: inquiry", "Happy to help."))
	require.Equal(t, []string{"jane@x.com"}, ml.replies)
	require.NotNil(t, repo.byID[id].Reply)
	require.True(t, repo.byID[id].Seen)
	require.WithinDuration(t, time.Now(), repo.lastReply.SentAt, time.Minute)

	// A second reply is rejected before any mail is sent.
	err = svc.Reply(context.Background(), id, "Re: again", "ping")
	require.ErrorIs(t, err, errs.ErrAlreadyReplied)
	require.Len(t, ml.replies, 1)
}

func TestReply_Validation(t *testing.T) {
	repo := newFakeContacts()
	svc := newContact(repo, &fakeMailer{})
	ctx := context.Background()

	require.ErrorIs(t, svc.Reply(ctx, uuid.Must(uuid.NewV4()), "", "body"), errs.ErrValidation)
	require.ErrorIs(t, svc.Reply(ctx, uuid.Must(uuid.NewV4()), "subj", ""), errs.ErrValidation)
	require.ErrorIs(t, svc.Reply(ctx, uuid.Nil, "subj", "body"), errs.ErrNotFound)
	require.ErrorIs(t, svc.Reply(ctx, uuid.Must(uuid.NewV4()), "subj", "body"), errs.ErrNotFound)
}

func TestMarkSeen(t *testing.T) {
	repo := newFakeContacts()
	svc := newContact(repo, &fakeMailer{})
	ctx := context.Background()

	id, err := svc.Submit(ctx, "Jane", "jane@x.com", "", "need a site")
	require.NoError(t, err)

	require.NoError(t, svc.MarkSeen(ctx, id))
	require.True(t, repo.byID[id].Seen)

	require.ErrorIs(t, svc.MarkSeen(ctx, uuid.Must(uuid.NewV4())), errs.ErrNotFound)
	require.ErrorIs(t, svc.MarkSeen(ctx, uuid.Nil), errs.ErrNotFound)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nexel-studio/agency-api/internal/errs"
	"github.com/nexel-studio/agency-api/internal/model"
)

type fakeWorks struct {
	nextID   int64
	clashes  int // first N creates return ErrAlreadyExists
	lastSeen *model.NewWork

	items []model.Work

	deleteMatched bool
	deletedID     int64
}

func (f *fakeWorks) List(ctx context.Context) ([]model.Work, error) { return f.items, nil }

func (f *fakeWorks) Create(ctx context.Context, w *model.NewWork) (int64, error) {
	if f.clashes > 0 {
		f.clashes--
		return 0, errs.ErrAlreadyExists
	}
	f.lastSeen = w
	f.nextID++
	return f.nextID, nil
}

func (f *fakeWorks) GetImage(ctx context.Context, id int64) ([]byte, string, error) {
	return nil, "", errs.ErrNotFound
}

func (f *fakeWorks) Delete(ctx context.Context, id int64) (bool, error) {
	f.deletedID = id
	return f.deleteMatched, nil
}

func validNewWork() model.NewWork {
	return model.NewWork{
		Title:       "Rebrand",
		Client:      "Acme",
		Description: "Full rebrand",
		CategoryID:  3,
		Results:     []string{"2x signups"},
		Tech:        []string{"figma"},
		Image:       []byte{0xFF, 0xD8},
		ImageType:   "image/jpeg",
		Duration:    "6 weeks",
	}
}

func TestWorkCreate_Validation(t *testing.T) {
	svc := NewWorkService(&fakeWorks{}, 1<<20)

	tests := []struct {
		name   string
		mutate func(*model.NewWork)
	}{
		{"missing title", func(w *model.NewWork) { w.Title = "" }},
		{"missing client", func(w *model.NewWork) { w.Client = "" }},
		{"missing description", func(w *model.NewWork) { w.Description = "" }},
		{"missing duration", func(w *model.NewWork) { w.Duration = "" }},
		{"category too low", func(w *model.NewWork) { w.CategoryID = 0 }},
		{"category too high", func(w *model.NewWork) { w.CategoryID = 10 }},
		{"no results", func(w *model.NewWork) { w.Results = nil }},
		{"too many results", func(w *model.NewWork) { w.Results = make([]string, 11) }},
		{"no tech", func(w *model.NewWork) { w.Tech = nil }},
		{"too many tech", func(w *model.NewWork) { w.Tech = make([]string, 11) }},
		{"no image", func(w *model.NewWork) { w.Image = nil }},
		{"oversized image", func(w *model.NewWork) { w.Image = make([]byte, 1<<20+1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := validNewWork()
			tc.mutate(&w)
			_, err := svc.Create(context.Background(), w)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestWorkCreate_SequentialIDs(t *testing.T) {
	repo := &fakeWorks{}
	svc := NewWorkService(repo, 1<<20)

	for want := int64(1); want <= 3; want++ {
		id, err := svc.Create(context.Background(), validNewWork())
		require.NoError(t, err)
		require.Equal(t, want, id)
	}
}

func TestWorkCreate_AppliesColorDefaults(t *testing.T) {
	repo := &fakeWorks{}
	svc := NewWorkService(repo, 1<<20)

	_, err := svc.Create(context.Background(), validNewWork())
	require.NoError(t, err)
	require.Equal(t, DefaultColor, repo.lastSeen.Color)
	require.Equal(t, DefaultBgColor, repo.lastSeen.BgColor)

	w := validNewWork()
	w.Color = "#111111"
	w.BgColor = "#222222"
	_, err = svc.Create(context.Background(), w)
	require.NoError(t, err)
	require.Equal(t, "#111111", repo.lastSeen.Color)
	require.Equal(t, "#222222", repo.lastSeen.BgColor)
}

func TestWorkCreate_RetriesOnIDClash(t *testing.T) {
	repo := &fakeWorks{clashes: 2}
	svc := NewWorkService(repo, 1<<20)

	id, err := svc.Create(context.Background(), validNewWork())
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
}

func TestWorkCreate_GivesUpAfterRetries(t *testing.T) {
	repo := &fakeWorks{clashes: createAttempts}
	svc := NewWorkService(repo, 1<<20)

	_, err := svc.Create(context.Background(), validNewWork())
	require.ErrorIs(t, err, errs.ErrAlreadyExists)
}

func TestWorkDelete(t *testing.T) {
	repo := &fakeWorks{deleteMatched: true}
	svc := NewWorkService(repo, 1<<20)

	deleted, err := svc.Delete(context.Background(), 5)
	require.NoError(t, err)
	require.True(t, deleted)
	require.Equal(t, int64(5), repo.deletedID)

	repo.deleteMatched = false
	deleted, err = svc.Delete(context.Background(), 99)
	require.NoError(t, err)
	require.False(t, deleted)

	_, err = svc.Delete(context.Background(), 0)
	require.ErrorIs(t, err, errs.ErrValidation)
	_, err = svc.Delete(context.Background(), -1)
	require.ErrorIs(t, err, errs.ErrValidation)
}

func TestWorkGetImage_BadID(t *testing.T) {
	svc := NewWorkService(&fakeWorks{}, 1<<20)
	_, _, err := svc.GetImage(context.Background(), 0)
	require.ErrorIs(t, err, errs.ErrNotFound)
}

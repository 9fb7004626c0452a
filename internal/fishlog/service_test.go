package fishlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/calendar"
)

type memRepository struct {
	logs map[string]*Log
}

func newMemRepository(logs ...*Log) *memRepository {
	r := &memRepository{logs: make(map[string]*Log)}
	for _, l := range logs {
		r.logs[l.ID] = l
	}
	return r
}

func (r *memRepository) Create(_ context.Context, l *Log) error {
	l.ID = "log-new"
	cp := *l
	r.logs[l.ID] = &cp
	return nil
}

func (r *memRepository) GetByID(_ context.Context, id string) (*Log, error) {
	l, ok := r.logs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (r *memRepository) List(_ context.Context, f Filter) ([]*Log, int, error) {
	var out []*Log
	for _, l := range r.logs {
		if f.UserID == "" || l.UserID == f.UserID {
			out = append(out, l)
		}
	}
	return out, len(out), nil
}

func (r *memRepository) Update(_ context.Context, l *Log) error {
	cp := *l
	r.logs[l.ID] = &cp
	return nil
}

func (r *memRepository) Delete(_ context.Context, id string) error {
	delete(r.logs, id)
	return nil
}

func (r *memRepository) SetPictureURL(_ context.Context, id string, url string) error {
	r.logs[id].PictureURL = &url
	return nil
}

var _ Repository = (*memRepository)(nil)

// fileRecorder is a FileRemover that records the URLs it was asked to delete.
type fileRecorder struct {
	removed []string
}

func (f *fileRecorder) DeleteByURL(_ context.Context, url string) error {
	f.removed = append(f.removed, url)
	return nil
}

var (
	angler   = auth.Actor{UserID: "angler", Role: auth.RoleUser}
	stranger = auth.Actor{UserID: "stranger", Role: auth.RoleUser}
	admin    = auth.Actor{UserID: "admin", Role: auth.RoleAdmin}
)

func catchDate(t *testing.T) calendar.Date {
	t.Helper()
	d, err := calendar.ParseDate("2025-02-10")
	require.NoError(t, err)
	return d
}

func fixture(t *testing.T) *Log {
	return &Log{ID: "log-1", UserID: "angler", FishName: "Bass", CatchDate: catchDate(t)}
}

func ptr[T any](v T) *T { return &v }

func TestService_Create(t *testing.T) {
	svc := NewService(newMemRepository(), &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	l, err := svc.Create(ctx, angler, CreateRequest{
		FishName: "  Pike ", Size: ptr(62.5), CatchDate: catchDate(t), Released: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "angler", l.UserID)
	assert.Equal(t, "Pike", l.FishName)
	assert.True(t, l.Released)

	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"no fish name", CreateRequest{FishName: " ", CatchDate: catchDate(t)}, ErrFishNameRequired},
		{"negative size", CreateRequest{FishName: "Pike", Size: ptr(-1.0), CatchDate: catchDate(t)}, ErrInvalidSize},
		{"zero weight", CreateRequest{FishName: "Pike", Weight: ptr(0.0), CatchDate: catchDate(t)}, ErrInvalidWeight},
		{"no catch date", CreateRequest{FishName: "Pike"}, ErrCatchDateMissing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, angler, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.Create(ctx, auth.Actor{}, CreateRequest{FishName: "Pike", CatchDate: catchDate(t)})
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestService_Permissions(t *testing.T) {
	repo := newMemRepository(fixture(t))
	svc := NewService(repo, &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	_, err := svc.GetByID(ctx, stranger, "log-1")
	assert.ErrorIs(t, err, auth.ErrForbidden)

	_, err = svc.GetByID(ctx, stranger, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, stranger, "log-1", UpdateRequest{Comment: ptr("mine now")})
	assert.ErrorIs(t, err, auth.ErrForbidden)

	assert.ErrorIs(t, svc.SetPicture(ctx, stranger, "log-1", "/v1/files/x"), auth.ErrForbidden)
	assert.Nil(t, repo.logs["log-1"].PictureURL)

	_, err = svc.GetByID(ctx, admin, "log-1")
	assert.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, stranger, "log-1"), auth.ErrForbidden)
	assert.NoError(t, svc.Delete(ctx, angler, "log-1"))
	assert.Empty(t, repo.logs)
}

func TestService_Update(t *testing.T) {
	repo := newMemRepository(fixture(t))
	svc := NewService(repo, &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	l, err := svc.Update(ctx, angler, "log-1", UpdateRequest{Weight: ptr(2.4), Released: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "Bass", l.FishName)
	assert.Equal(t, 2.4, *l.Weight)
	assert.True(t, repo.logs["log-1"].Released)

	_, err = svc.Update(ctx, angler, "log-1", UpdateRequest{FishName: ptr("")})
	assert.ErrorIs(t, err, ErrFishNameRequired)
	assert.Equal(t, "Bass", repo.logs["log-1"].FishName)
}

func TestService_SetPicture(t *testing.T) {
	repo := newMemRepository(fixture(t))
	files := &fileRecorder{}
	svc := NewService(repo, files, auth.NewPolicy())
	ctx := context.Background()

	require.NoError(t, svc.SetPicture(ctx, angler, "log-1", "/v1/files/f1"))
	assert.Equal(t, "/v1/files/f1", *repo.logs["log-1"].PictureURL)
	assert.Empty(t, files.removed)

	require.NoError(t, svc.SetPicture(ctx, angler, "log-1", "/v1/files/f2"))
	assert.Equal(t, []string{"/v1/files/f1"}, files.removed, "the replaced picture is deleted")

	require.NoError(t, svc.Delete(ctx, angler, "log-1"))
	assert.Equal(t, []string{"/v1/files/f1", "/v1/files/f2"}, files.removed)
}

func TestService_List_Scoped(t *testing.T) {
	other := fixture(t)
	other.ID, other.UserID = "log-2", "stranger"
	svc := NewService(newMemRepository(fixture(t), other), &fileRecorder{}, auth.NewPolicy())
	ctx := context.Background()

	logs, total, err := svc.List(ctx, angler, Filter{UserID: "stranger"})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Equal(t, "angler", logs[0].UserID)

	_, total, err = svc.List(ctx, admin, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
}

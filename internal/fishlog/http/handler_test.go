package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/file"
	filehttp "github.com/fisherfans/fisherfans-backend/internal/file/http"
	"github.com/fisherfans/fisherfans-backend/internal/fishlog"
	logHttp "github.com/fisherfans/fisherfans-backend/internal/fishlog/http"
)

const logID = "3b9e8f10-2222-4c4d-8e9f-000000000001"

type mockService struct {
	fishlog.Service
	create           func(ctx context.Context, actor auth.Actor, req fishlog.CreateRequest) (*fishlog.Log, error)
	list             func(ctx context.Context, actor auth.Actor, f fishlog.Filter) ([]*fishlog.Log, int, error)
	authorizePicture func(ctx context.Context, actor auth.Actor, id string) error
	setPicture       func(ctx context.Context, actor auth.Actor, id, url string) error
}

func (m *mockService) Create(ctx context.Context, actor auth.Actor, req fishlog.CreateRequest) (*fishlog.Log, error) {
	return m.create(ctx, actor, req)
}
func (m *mockService) List(ctx context.Context, actor auth.Actor, f fishlog.Filter) ([]*fishlog.Log, int, error) {
	return m.list(ctx, actor, f)
}
func (m *mockService) AuthorizePicture(ctx context.Context, actor auth.Actor, id string) error {
	return m.authorizePicture(ctx, actor, id)
}
func (m *mockService) SetPicture(ctx context.Context, actor auth.Actor, id, url string) error {
	return m.setPicture(ctx, actor, id, url)
}

type mockFileService struct {
	file.Service
	deleted []string
}

func (m *mockFileService) Upload(_ context.Context, in file.UploadInput) (*file.File, error) {
	return &file.File{ID: "file-9", ContentType: "image/png", Size: in.FileHeader.Size}, nil
}

func (m *mockFileService) Delete(_ context.Context, id string) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func newRouter(svc fishlog.Service, files file.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		auth.SetActor(c, auth.Actor{UserID: "u1", Role: auth.RoleUser})
		c.Next()
	}
	logHttp.RegisterRoutes(r.Group("/v1"), logHttp.NewHandler(svc, filehttp.NewHandler(files), 1<<20), fakeAuth)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	svc := &mockService{
		create: func(_ context.Context, actor auth.Actor, req fishlog.CreateRequest) (*fishlog.Log, error) {
			return &fishlog.Log{ID: logID, UserID: actor.UserID, FishName: req.FishName, CatchDate: req.CatchDate}, nil
		},
	}
	r := newRouter(svc, &mockFileService{})

	w := do(r, http.MethodPost, "/v1/logs", map[string]any{"fish_name": "Trout", "catch_date": "2025-02-10"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"catch_date":"2025-02-10"`)
	assert.Contains(t, w.Body.String(), `"picture_url":null`)

	w = do(r, http.MethodPost, "/v1/logs", map[string]any{"fish_name": "Trout", "catch_date": "10/02/2025"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/logs", map[string]any{"fish_name": "Trout", "catch_date": "2025-02-10", "user_id": "u2"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestList(t *testing.T) {
	var filter fishlog.Filter
	svc := &mockService{
		list: func(_ context.Context, _ auth.Actor, f fishlog.Filter) ([]*fishlog.Log, int, error) {
			filter = f
			return nil, 0, nil
		},
	}
	r := newRouter(svc, &mockFileService{})

	w := do(r, http.MethodGet, "/v1/logs/filter?released=true&min_catch_date=2025-01-01&sort_by=weight", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, filter.Released)
	assert.True(t, *filter.Released)
	require.NotNil(t, filter.MinCatchDate)
	assert.Equal(t, "2025-01-01", filter.MinCatchDate.String())
	assert.Equal(t, "weight", filter.SortBy)
	assert.Contains(t, w.Body.String(), `"items":[]`)

	w = do(r, http.MethodGet, "/v1/logs?min_catch_date=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadPicture(t *testing.T) {
	var url string
	files := &mockFileService{}
	svc := &mockService{
		authorizePicture: func(context.Context, auth.Actor, string) error { return nil },
		setPicture: func(_ context.Context, _ auth.Actor, _ string, u string) error {
			url = u
			return nil
		},
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, _ := mw.CreateFormFile("file", "pike.png")
	_, _ = part.Write([]byte("fake image"))
	_ = mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/logs/"+logID+"/picture", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	newRouter(svc, files).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, file.FileURL("file-9"), url)
	assert.Empty(t, files.deleted)
}

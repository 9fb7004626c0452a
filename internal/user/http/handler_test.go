package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fisherfans/fisherfans-backend/internal/auth"
	"github.com/fisherfans/fisherfans-backend/internal/user"
	userHttp "github.com/fisherfans/fisherfans-backend/internal/user/http"
)

// mockService is a test double for user.Service.
type mockService struct {
	user.Service
	register func(ctx context.Context, req user.RegisterRequest) (*user.Session, error)
	login    func(ctx context.Context, email, password string) (*user.Session, error)
	update   func(ctx context.Context, actor auth.Actor, id string, req user.UpdateUserRequest) (*user.User, error)
}

func (m *mockService) Register(ctx context.Context, req user.RegisterRequest) (*user.Session, error) {
	return m.register(ctx, req)
}
func (m *mockService) Login(ctx context.Context, email, password string) (*user.Session, error) {
	return m.login(ctx, email, password)
}
func (m *mockService) Update(ctx context.Context, actor auth.Actor, id string, req user.UpdateUserRequest) (*user.User, error) {
	return m.update(ctx, actor, id, req)
}

func newRouter(svc user.Service, actor auth.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	binding.EnableDecoderDisallowUnknownFields = true

	r := gin.New()
	fakeAuth := func(c *gin.Context) {
		auth.SetActor(c, actor)
		c.Next()
	}
	userHttp.RegisterRoutes(r.Group("/v1"), userHttp.NewHandler(svc), fakeAuth)
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

func TestRegister(t *testing.T) {
	svc := &mockService{
		register: func(_ context.Context, req user.RegisterRequest) (*user.Session, error) {
			if req.Email == "taken@example.com" {
				return nil, user.ErrEmailAlreadyUsed
			}
			return &user.Session{
				AccessToken: "token",
				User:        &user.User{ID: "u1", Email: req.Email, Name: req.Name, Status: auth.AccountIndividual, Role: auth.RoleUser},
			}, nil
		},
	}
	r := newRouter(svc, auth.Actor{})

	t.Run("created", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/users", map[string]any{
			"email": "new@example.com", "password": "password123", "name": "Doe",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp userHttp.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "token", resp.AccessToken)
		assert.Equal(t, "new@example.com", resp.User.Email)
	})

	t.Run("conflict", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/users", map[string]any{
			"email": "taken@example.com", "password": "password123", "name": "Doe",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"conflict"`)
	})

	t.Run("invalid email", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/users", map[string]any{
			"email": "nope", "password": "password123", "name": "Doe",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		w := do(r, http.MethodPost, "/v1/users", map[string]any{
			"email": "new@example.com", "password": "password123", "name": "Doe", "role": "admin",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := &mockService{
		login: func(context.Context, string, string) (*user.Session, error) {
			return nil, user.ErrInvalidCredentials
		},
	}
	r := newRouter(svc, auth.Actor{})

	w := do(r, http.MethodPost, "/v1/login", map[string]any{"email": "a@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdate_RoleChangeForbidden(t *testing.T) {
	actor := auth.Actor{UserID: "11111111-1111-1111-1111-111111111111", Role: auth.RoleUser}
	svc := &mockService{
		update: func(_ context.Context, a auth.Actor, id string, req user.UpdateUserRequest) (*user.User, error) {
			if req.Role != nil && !a.IsAdmin() {
				return nil, auth.ErrAdminOnlyRole
			}
			return &user.User{ID: id}, nil
		},
	}
	r := newRouter(svc, actor)

	w := do(r, http.MethodPatch, "/v1/users/"+actor.UserID, map[string]any{"role": "admin"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPatch, "/v1/users/not-a-uuid", map[string]any{"city": "Brest"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

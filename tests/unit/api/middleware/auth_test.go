package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhive/taskhive/internal/api/middleware"
	"github.com/taskhive/taskhive/internal/auth"
)

type mockUserRepo struct {
	getByIDFn func(ctx context.Context, id uuid.UUID) (*auth.User, error)
}

func (m *mockUserRepo) Create(_ context.Context, u *auth.User) error {
	u.ID = uuid.New()
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, auth.ErrUserNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, _ string) (*auth.User, error) {
	return nil, auth.ErrUserNotFound
}

func newAuthService(repo auth.UserRepository) *auth.Service {
	return auth.NewService(repo, "test-secret", time.Hour, bcrypt.MinCost)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuth_MissingHeader_Unauthorized(t *testing.T) {
	mw := middleware.Auth(newAuthService(&mockUserRepo{}))
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	w := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "UNAUTHORIZED", errObj["code"])
	assert.Equal(t, "No token provided", errObj["message"])
}

func TestAuth_NonBearerHeader_Unauthorized(t *testing.T) {
	mw := middleware.Auth(newAuthService(&mockUserRepo{}))
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Basic abc123")
	w := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_GarbageToken_Unauthorized(t *testing.T) {
	mw := middleware.Auth(newAuthService(&mockUserRepo{}))
	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	w := httptest.NewRecorder()

	mw(okHandler()).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	errObj := env["error"].(map[string]interface{})
	assert.Equal(t, "Invalid token", errObj["message"])
}

func TestAuth_ValidToken_IdentityInContext(t *testing.T) {
	userID := uuid.New()
	repo := &mockUserRepo{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*auth.User, error) {
			return &auth.User{ID: id, Name: "Alice", Email: "alice@example.com"}, nil
		},
	}
	svc := newAuthService(repo)

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)

	var captured *auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = middleware.GetIdentity(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()

	middleware.Auth(svc)(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, captured)
	assert.Equal(t, userID, captured.UserID)
	assert.Equal(t, "Alice", captured.Name)
	assert.Equal(t, "alice@example.com", captured.Email)
}

func TestGetIdentity_EmptyContext(t *testing.T) {
	assert.Nil(t, middleware.GetIdentity(context.Background()))
}

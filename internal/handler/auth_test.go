package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/todo-api/internal/auth"
	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
	"github.com/BuzzLyutic/todo-api/internal/service"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (m *memUserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return model.User{}, repo.ErrorConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	m.users[u.ID] = u
	return u, nil
}

func (m *memUserRepo) Get(ctx context.Context, id uuid.UUID) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repo.ErrorNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repo.ErrorNotFound
}

func setupAuthRouter(t *testing.T) (http.Handler, *memUserRepo) {
	t.Helper()

	memRepo := newMemUserRepo()
	tokens := auth.NewManager("test-secret", time.Hour)
	h := NewAuthHandler(service.NewAuthService(memRepo), tokens, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.With(tokens.Middleware).Get("/current", h.Current)
	})
	return r, memRepo
}

func postJSON(t *testing.T, router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestAuthHandler_Register(t *testing.T) {
	router, memRepo := setupAuthRouter(t)

	t.Run("successful registration", func(t *testing.T) {
		w := postJSON(t, router, "/api/user/register", model.Credentials{
			Email:    "new@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusCreated, w.Code)

		cookie := sessionCookie(t, w)
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)

		// Password never leaves the server.
		assert.NotContains(t, w.Body.String(), "secret123")
		assert.NotContains(t, w.Body.String(), "password")

		var user model.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		w := postJSON(t, router, "/api/user/register", model.Credentials{
			Email:    "new@example.com",
			Password: "secret123",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := postJSON(t, router, "/api/user/register", model.Credentials{Email: "x@y.z"})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		// No record persisted.
		_, err := memRepo.GetByEmail(context.Background(), "x@y.z")
		assert.ErrorIs(t, err, repo.ErrorNotFound)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	router, memRepo := setupAuthRouter(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = memRepo.Create(context.Background(), model.User{
		Email:        "known@example.com",
		PasswordHash: string(hash),
	})
	require.NoError(t, err)

	t.Run("successful login sets cookie", func(t *testing.T) {
		w := postJSON(t, router, "/api/user/login", model.Credentials{
			Email:    "known@example.com",
			Password: "secret123",
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, sessionCookie(t, w).Value)
	})

	t.Run("unknown email is 404", func(t *testing.T) {
		w := postJSON(t, router, "/api/user/login", model.Credentials{
			Email:    "ghost@example.com",
			Password: "secret123",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("wrong password is 400", func(t *testing.T) {
		w := postJSON(t, router, "/api/user/login", model.Credentials{
			Email:    "known@example.com",
			Password: "wrong-password",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_CurrentAndLogout(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := postJSON(t, router, "/api/user/register", model.Credentials{
		Email:    "me@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	cookie := sessionCookie(t, w)

	t.Run("current with session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/current", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var user model.User
		require.NoError(t, json.NewDecoder(w.Body).Decode(&user))
		assert.Equal(t, "me@example.com", user.Email)
	})

	t.Run("current without session is 401", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/user/current", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("logout expires the cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/user/logout", nil)
		req.AddCookie(cookie)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		expired := sessionCookie(t, w)
		assert.Empty(t, expired.Value)
		assert.Negative(t, expired.MaxAge)
	})
}

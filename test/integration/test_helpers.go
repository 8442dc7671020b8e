//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"stream-api/internal/config"
	"stream-api/internal/handler"
	"stream-api/internal/middleware"
	"stream-api/internal/model"
	"stream-api/internal/router"
	"stream-api/internal/security"
	"stream-api/internal/service"
	"stream-api/internal/util"
	"stream-api/pkg/apierror"
)

const (
	johnID   = "68f2a9c1d4e5f60718293a01"
	janeID   = "68f2a9c1d4e5f60718293a02"
	samID    = "68f2a9c1d4e5f60718293a03"
	movie1ID = "64c9e1f2a3b4c5d6e7f80901"
	movie2ID = "64c9e1f2a3b4c5d6e7f80902"
)

// memoryUserStore satisfies both the credential lookup and the user CRUD
// store with a map guarded by a mutex.
type memoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func newMemoryUserStore() *memoryUserStore {
	return &memoryUserStore{users: map[string]model.User{}}
}

func (s *memoryUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memoryUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return model.User{}, apierror.ObjectNotFound("user", id)
}

func (s *memoryUserStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryUserStore) List(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *memoryUserStore) Update(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return apierror.ObjectNotFound("user", u.ID)
	}
	s.users[u.ID] = u
	return nil
}

func (s *memoryUserStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return apierror.ObjectNotFound("user", id)
	}
	delete(s.users, id)
	return nil
}

type memoryMovieStore struct {
	mu     sync.RWMutex
	movies map[string]model.Movie
}

func newMemoryMovieStore() *memoryMovieStore {
	return &memoryMovieStore{movies: map[string]model.Movie{}}
}

func (s *memoryMovieStore) List(_ context.Context) ([]model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memoryMovieStore) FindByID(_ context.Context, id string) (model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if m, ok := s.movies[id]; ok {
		return m, nil
	}
	return model.Movie{}, apierror.ObjectNotFound("movie", id)
}

func (s *memoryMovieStore) Create(_ context.Context, m model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies[m.ID] = m
	return nil
}

func (s *memoryMovieStore) Update(_ context.Context, m model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[m.ID]; !ok {
		return apierror.ObjectNotFound("movie", m.ID)
	}
	s.movies[m.ID] = m
	return nil
}

func (s *memoryMovieStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.movies[id]; !ok {
		return apierror.ObjectNotFound("movie", id)
	}
	delete(s.movies, id)
	return nil
}

func seedUser(t *testing.T, store *memoryUserStore, id, first, last, email, password, roles string, enabled bool) {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	now := time.Now().UTC()
	require.NoError(t, store.Create(context.Background(), model.User{
		ID:           id,
		FirstName:    first,
		LastName:     last,
		Email:        email,
		PasswordHash: hash,
		Enabled:      enabled,
		Roles:        roles,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
}

type testEnv struct {
	server *httptest.Server
	users  *memoryUserStore
	movies *memoryMovieStore
	issuer *security.TokenIssuer
}

func newTestServer(t *testing.T) *testEnv {
	t.Helper()

	users := newMemoryUserStore()
	movies := newMemoryMovieStore()

	seedUser(t, users, johnID, "John", "Smith", "john@test.com", "123456", "admin user", true)
	seedUser(t, users, janeID, "Jane", "Doe", "jane@test.com", "qwerty", "user", true)
	seedUser(t, users, samID, "Sam", "Lee", "sam@test.com", "123456", "user", false)

	now := time.Now().UTC()
	for i, title := range []string{"some-title", "some-title-2"} {
		id := movie1ID
		if i == 1 {
			id = movie2ID
		}
		require.NoError(t, movies.Create(context.Background(), model.Movie{
			ID:          id,
			Title:       title,
			Description: "a movie for testing",
			ReleaseDate: "2021-01-01",
			Genres:      []string{"drama"},
			CreatedAt:   now,
			UpdatedAt:   now,
		}))
	}

	keys, err := security.GenerateSigningKeys()
	require.NoError(t, err)
	issuer := security.NewTokenIssuer(keys, "self", 2*time.Hour)
	verifier := security.NewTokenVerifier(keys)
	policy := security.DefaultPolicy("/api/v1")

	authService := service.NewAuthService(users, issuer, nil)
	movieService := service.NewMovieService(movies)
	userService := service.NewUserService(users, nil)

	authMiddleware := middleware.NewAuthMiddleware(authService, verifier, policy)
	metrics := middleware.NewMetrics()

	cfg := &config.Config{
		ServerPort:       "8080",
		RequestTimeout:   30 * time.Second,
		BaseURL:          "/api/v1",
		CORSOrigins:      []string{"*"},
		RateLimitRPM:     10000,
		AuthRateLimitRPM: 10000,
	}

	handlers := router.Handlers{
		Auth:  handler.NewAuthHandler(authService),
		Movie: handler.NewMovieHandler(movieService),
		User:  handler.NewUserHandler(userService),
	}

	server := httptest.NewServer(router.New(cfg, authMiddleware, handlers, metrics))
	t.Cleanup(server.Close)

	return &testEnv{server: server, users: users, movies: movies, issuer: issuer}
}

// mintToken issues a token directly, bypassing the login route, for
// principals that could never pass the login policy themselves.
func (e *testEnv) mintToken(t *testing.T, roles string) string {
	t.Helper()
	token, err := e.issuer.Issue(security.ResolvePrincipal(model.User{Enabled: true, Roles: roles}))
	require.NoError(t, err)
	return token
}

type result struct {
	Flag    bool            `json:"flag"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doRequest(t *testing.T, method, url, token string, payload any) (*http.Response, result) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed result
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}

	return resp, parsed
}

// login performs the Basic-credential handshake and returns the raw response
// plus the issued token when the handshake succeeded.
func login(t *testing.T, serverURL, email, password string) (*http.Response, result, string) {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, serverURL+"/api/v1/users/login", nil)
	require.NoError(t, err)
	req.SetBasicAuth(email, password)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	var parsed result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))

	var token string
	if parsed.Flag {
		var data struct {
			UserInfo model.UserInfo `json:"userInfo"`
			Token    string         `json:"token"`
		}
		require.NoError(t, json.Unmarshal(parsed.Data, &data))
		token = data.Token
	}

	return resp, parsed, token
}

func newObjectID() string {
	return util.NewObjectID()
}

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stream-api/internal/model"
	"stream-api/internal/security"
)

type fakeAuthenticator struct {
	user      model.User
	principal security.Principal
	err       error
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, _ string, _ string) (model.User, security.Principal, error) {
	return f.user, f.principal, f.err
}

type fakeVerifier struct {
	principal security.Principal
	err       error
}

func (f *fakeVerifier) Verify(string) (security.Principal, error) {
	return f.principal, f.err
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) model.Result {
	t.Helper()
	var result model.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestBasicAuth(t *testing.T) {
	policy := security.DefaultPolicy("/api/v1")

	t.Run("missing authorization header", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)

		m.BasicAuth(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		result := decodeResult(t, rec)
		assert.False(t, result.Flag)
		assert.Equal(t, http.StatusUnauthorized, result.Code)
		assert.Equal(t, model.MsgMissingCredentials, result.Message)
	})

	t.Run("rejected credentials collapse to one message", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{err: model.ErrPasswordMismatch}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
		req.SetBasicAuth("john@test.com", "wrong")

		m.BasicAuth(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		result := decodeResult(t, rec)
		assert.Equal(t, model.MsgBadCredentials, result.Message)
		assert.Nil(t, result.Data)
	})

	t.Run("disabled account gets its own message", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{err: model.ErrAccountDisabled}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
		req.SetBasicAuth("sam@test.com", "123456")

		m.BasicAuth(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, model.MsgAccountDisabled, decodeResult(t, rec).Message)
	})

	t.Run("successful handshake stores principal and user on the context", func(t *testing.T) {
		user := model.User{ID: "68f2a9c1d4e5f60718293a4b", Email: "john@test.com", Roles: "admin user"}
		principal := security.ResolvePrincipal(user)
		m := NewAuthMiddleware(&fakeAuthenticator{user: user, principal: principal}, &fakeVerifier{}, policy)

		var gotPrincipal *security.Principal
		var gotUser model.User
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPrincipal, _ = PrincipalFromContext(r.Context())
			gotUser, _ = UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/users/login", nil)
		req.SetBasicAuth("john@test.com", "123456")

		m.BasicAuth(inner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotPrincipal)
		assert.True(t, gotPrincipal.Authorities().Has("ROLE_admin"))
		assert.Equal(t, "john@test.com", gotUser.Email)
	})
}

func TestBearerAuth(t *testing.T) {
	policy := security.DefaultPolicy("/api/v1")

	t.Run("absent header passes through anonymously", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{err: model.ErrTokenMalformed}, policy)

		var sawPrincipal bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawPrincipal = PrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)

		m.BearerAuth(inner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, sawPrincipal)
	})

	t.Run("presented invalid token is rejected even on a public route", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{err: model.ErrTokenExpired}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)
		req.Header.Set("Authorization", "Bearer expired.token.here")

		m.BearerAuth(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, model.MsgInvalidBearerToken, decodeResult(t, rec).Message)
	})

	t.Run("valid token establishes the claimed principal", func(t *testing.T) {
		principal := security.TokenPrincipal("ROLE_user")
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{principal: principal}, policy)

		var gotPrincipal *security.Principal
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPrincipal, _ = PrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/movies/64c9e1f2a3b4c5d6e7f80912", nil)
		req.Header.Set("Authorization", "Bearer good.token.here")

		m.BearerAuth(inner).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotPrincipal)
		assert.True(t, gotPrincipal.Authorities().Has("ROLE_user"))
	})
}

func TestAuthorize(t *testing.T) {
	policy := security.DefaultPolicy("/api/v1")

	withPrincipal := func(req *http.Request, p security.Principal) *http.Request {
		ctx := context.WithValue(req.Context(), principalContextKey, &p)
		return req.WithContext(ctx)
	}

	t.Run("public route allows anonymous", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/movies", nil)

		m.Authorize(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("protected route without principal", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/movies", nil)

		m.Authorize(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, model.MsgMissingCredentials, decodeResult(t, rec).Message)
	})

	t.Run("authenticated principal without the required authority", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		req = withPrincipal(req, security.TokenPrincipal("ROLE_user"))

		m.Authorize(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
		result := decodeResult(t, rec)
		assert.Equal(t, model.MsgForbidden, result.Message)
		assert.Equal(t, http.StatusForbidden, result.Code)
	})

	t.Run("authenticated principal with the required authority", func(t *testing.T) {
		m := NewAuthMiddleware(&fakeAuthenticator{}, &fakeVerifier{}, policy)
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/users/51c9e1f2a3b4c5d6e7f80934", nil)
		req = withPrincipal(req, security.TokenPrincipal("ROLE_admin ROLE_user"))

		m.Authorize(okHandler()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

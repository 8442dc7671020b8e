package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"stream-api/internal/model"
	"stream-api/internal/security"
)

type authenticator interface {
	Authenticate(ctx context.Context, username string, password string) (model.User, security.Principal, error)
}

type tokenVerifier interface {
	Verify(token string) (security.Principal, error)
}

type contextKey string

const (
	principalContextKey contextKey = "auth_principal"
	userContextKey      contextKey = "auth_user"
)

type AuthMiddleware struct {
	auth     authenticator
	verifier tokenVerifier
	policy   *security.Policy
}

func NewAuthMiddleware(auth authenticator, verifier tokenVerifier, policy *security.Policy) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, verifier: verifier, policy: policy}
}

// BasicAuth guards the login route. It runs the full credential handshake and
// stores both the principal and the matching user record on the request
// context for the login handler.
func (m *AuthMiddleware) BasicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			writeFailure(w, model.ErrMissingBasicAuth)
			return
		}

		user, principal, err := m.auth.Authenticate(r.Context(), username, password)
		if err != nil {
			// The internal reason (unknown username vs bad password vs
			// disabled) is logged here; the response collapses it.
			slog.Warn("basic authentication rejected", "username", username, "reason", err.Error())
			writeFailure(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, &principal)
		ctx = context.WithValue(ctx, userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BearerAuth resolves a principal from an Authorization bearer header when
// one is presented. A missing header is not an error here: the access policy
// decides whether the route needs a principal. A presented-but-invalid token
// is always rejected, even on public routes.
func (m *AuthMiddleware) BearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			next.ServeHTTP(w, r)
			return
		}

		token := strings.TrimSpace(header[len("bearer "):])
		principal, err := m.verifier.Verify(token)
		if err != nil {
			slog.Warn("bearer token rejected", "reason", err.Error())
			writeFailure(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), principalContextKey, &principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorize enforces the access policy for the request's method and path
// against whatever principal the authentication middleware established.
func (m *AuthMiddleware) Authorize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, _ := PrincipalFromContext(r.Context())

		switch decision := m.policy.Decide(r.Method, r.URL.Path, principal); decision {
		case security.DecisionAllow:
			next.ServeHTTP(w, r)
		case security.DecisionDeny:
			slog.Warn("access denied", "method", r.Method, "path", r.URL.Path)
			writeFailure(w, model.ErrForbidden)
		default:
			writeFailure(w, model.ErrMissingBearerToken)
		}
	})
}

func PrincipalFromContext(ctx context.Context) (*security.Principal, bool) {
	principal, ok := ctx.Value(principalContextKey).(*security.Principal)
	return principal, ok
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"stream-api/internal/audit"
	"stream-api/internal/model"
	"stream-api/internal/security"
)

// CredentialStore is the read-only lookup the login handshake performs
// against stored user records.
type CredentialStore interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
}

// AuthService runs the Basic-credential login handshake and issues bearer
// tokens for authenticated principals.
type AuthService struct {
	users  CredentialStore
	issuer *security.TokenIssuer
	audit  audit.Recorder
}

func NewAuthService(users CredentialStore, issuer *security.TokenIssuer, recorder audit.Recorder) *AuthService {
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &AuthService{users: users, issuer: issuer, audit: recorder}
}

// Authenticate performs the handshake in a fixed order: record lookup, then
// password verification, then the enabled check. Lookup failure and password
// mismatch stay distinct internally but collapse to one message outward.
func (s *AuthService) Authenticate(ctx context.Context, username string, password string) (model.User, security.Principal, error) {
	email := strings.TrimSpace(username)
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			s.audit.Record(audit.Entry(audit.ActionLoginFailed, email, "unknown username"))
			return model.User{}, security.Principal{}, model.ErrUnknownUsername
		}
		return model.User{}, security.Principal{}, fmt.Errorf("credential lookup: %w", err)
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		s.audit.Record(audit.Entry(audit.ActionLoginFailed, email, "password mismatch"))
		return model.User{}, security.Principal{}, model.ErrPasswordMismatch
	}

	if !user.Enabled {
		s.audit.Record(audit.Entry(audit.ActionAccountDisabled, email, ""))
		return model.User{}, security.Principal{}, model.ErrAccountDisabled
	}

	principal := security.ResolvePrincipal(user)
	s.audit.Record(audit.Entry(audit.ActionLoginSucceeded, email, principal.Authorities().Join()))
	slog.Info("user authenticated", "username", principal.Username(), "authorities", principal.Authorities().Join())
	return user, principal, nil
}

// CreateLoginInfo builds the login response: the user's outward identity and
// a freshly signed bearer token. The password hash never appears here.
func (s *AuthService) CreateLoginInfo(user model.User, principal security.Principal) (model.LoginInfo, error) {
	token, err := s.issuer.Issue(principal)
	if err != nil {
		return model.LoginInfo{}, fmt.Errorf("issue token: %w", err)
	}

	return model.LoginInfo{UserInfo: user.Info(), Token: token}, nil
}

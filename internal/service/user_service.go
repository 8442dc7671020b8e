package service

import (
	"context"
	"strings"
	"time"

	"stream-api/internal/audit"
	"stream-api/internal/model"
	"stream-api/internal/security"
	"stream-api/internal/util"
	"stream-api/pkg/apierror"
)

type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, u model.User) error
	Update(ctx context.Context, u model.User) error
	Delete(ctx context.Context, id string) error
}

type UserService struct {
	users UserStore
	audit audit.Recorder
}

func NewUserService(users UserStore, recorder audit.Recorder) *UserService {
	if recorder == nil {
		recorder = audit.Discard{}
	}
	return &UserService{users: users, audit: recorder}
}

func (s *UserService) FindAll(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id string) (model.User, error) {
	if !util.IsValidObjectID(id) {
		return model.User{}, apierror.InvalidObjectID("user", id)
	}
	return s.users.FindByID(ctx, id)
}

// Add registers a user: the plaintext password is hashed before it goes
// anywhere near the store, and duplicate emails are rejected.
func (s *UserService) Add(ctx context.Context, req model.CreateUserRequest) (model.User, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return model.User{}, &model.ValidationError{Fields: fields}
	}

	email := strings.TrimSpace(req.Email)
	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, apierror.UserAlreadyExists(email)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return model.User{}, err
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           util.NewObjectID(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		PasswordHash: hash,
		Enabled:      req.Enabled,
		Roles:        strings.TrimSpace(req.Roles),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.User{}, err
	}
	s.audit.Record(audit.Entry(audit.ActionUserCreated, user.Email, user.ID))
	return user, nil
}

// Update replaces the identity fields; the password is never updated here.
func (s *UserService) Update(ctx context.Context, id string, req model.UpdateUserRequest) (model.User, error) {
	if !util.IsValidObjectID(id) {
		return model.User{}, apierror.InvalidObjectID("user", id)
	}
	if fields := req.Validate(); len(fields) > 0 {
		return model.User{}, &model.ValidationError{Fields: fields}
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return model.User{}, err
	}

	user.FirstName = strings.TrimSpace(req.FirstName)
	user.LastName = strings.TrimSpace(req.LastName)
	user.Email = strings.TrimSpace(req.Email)
	user.Enabled = req.Enabled
	user.Roles = strings.TrimSpace(req.Roles)
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return model.User{}, err
	}
	s.audit.Record(audit.Entry(audit.ActionUserUpdated, user.Email, user.ID))
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if !util.IsValidObjectID(id) {
		return apierror.InvalidObjectID("user", id)
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.audit.Record(audit.Entry(audit.ActionUserDeleted, "", id))
	return nil
}

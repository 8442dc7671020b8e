package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stream-api/internal/model"
	"stream-api/internal/security"
	"stream-api/internal/util"
	"stream-api/pkg/apierror"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *mockUserStore) FindByID(ctx context.Context, id string) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *mockUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Create(ctx context.Context, u model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) Update(ctx context.Context, u model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const userID = "51c9e1f2a3b4c5d6e7f80934"

func validCreateUserRequest() model.CreateUserRequest {
	return model.CreateUserRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@test.com",
		Password:  "qwerty",
		Enabled:   true,
		Roles:     "user",
	}
}

func TestUserService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a bcrypt hash, never the plaintext", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("ExistsByEmail", ctx, "jane@test.com").Return(false, nil)
		store.On("Create", ctx, mock.AnythingOfType("model.User")).Return(nil)

		svc := NewUserService(store, nil)
		user, err := svc.Add(ctx, validCreateUserRequest())

		require.NoError(t, err)
		assert.NotEqual(t, "qwerty", user.PasswordHash)
		assert.True(t, security.CheckPassword("qwerty", user.PasswordHash))
		assert.True(t, util.IsValidObjectID(user.ID))
		store.AssertExpectations(t)
	})

	t.Run("duplicate email is rejected with the taken address in the message", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("ExistsByEmail", ctx, "jane@test.com").Return(true, nil)

		svc := NewUserService(store, nil)
		_, err := svc.Add(ctx, validCreateUserRequest())

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "User with email jane@test.com already exists", apiErr.Message)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("short password and bad email fail validation together", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewUserService(store, nil)

		req := validCreateUserRequest()
		req.Password = "12345"
		req.Email = "not-an-email"
		_, err := svc.Add(ctx, req)

		var valErr *model.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Fields, "password")
		assert.Contains(t, valErr.Fields, "email")
		store.AssertNotCalled(t, "ExistsByEmail", mock.Anything, mock.Anything)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()
	stored := model.User{
		ID:           userID,
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@test.com",
		PasswordHash: "$2a$12$unchanged",
		Enabled:      true,
		Roles:        "user",
	}

	t.Run("identity fields change, the password hash does not", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByID", ctx, userID).Return(stored, nil)
		store.On("Update", ctx, mock.AnythingOfType("model.User")).Return(nil)

		svc := NewUserService(store, nil)
		user, err := svc.Update(ctx, userID, model.UpdateUserRequest{
			FirstName: "Janet",
			LastName:  "Doe",
			Email:     "janet@test.com",
			Enabled:   false,
			Roles:     "admin user",
		})

		require.NoError(t, err)
		assert.Equal(t, "Janet", user.FirstName)
		assert.Equal(t, "janet@test.com", user.Email)
		assert.False(t, user.Enabled)
		assert.Equal(t, "$2a$12$unchanged", user.PasswordHash)
	})

	t.Run("invalid id short-circuits", func(t *testing.T) {
		store := new(mockUserStore)
		svc := NewUserService(store, nil)

		_, err := svc.Update(ctx, "zz", model.UpdateUserRequest{})

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "user id: zz is invalid, should be 24 characters long", apiErr.Message)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestUserService_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("well-formed but unknown id surfaces not-found", func(t *testing.T) {
		store := new(mockUserStore)
		store.On("FindByID", ctx, userID).Return(model.User{}, apierror.ObjectNotFound("user", userID))

		svc := NewUserService(store, nil)
		_, err := svc.FindByID(ctx, userID)

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Could not find user with id "+userID, apiErr.Message)
	})
}

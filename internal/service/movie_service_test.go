package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"stream-api/internal/model"
	"stream-api/internal/util"
	"stream-api/pkg/apierror"
)

type mockMovieStore struct {
	mock.Mock
}

func (m *mockMovieStore) List(ctx context.Context) ([]model.Movie, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Movie), args.Error(1)
}

func (m *mockMovieStore) FindByID(ctx context.Context, id string) (model.Movie, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Movie), args.Error(1)
}

func (m *mockMovieStore) Create(ctx context.Context, movie model.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieStore) Update(ctx context.Context, movie model.Movie) error {
	return m.Called(ctx, movie).Error(0)
}

func (m *mockMovieStore) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

const movieID = "64c9e1f2a3b4c5d6e7f80912"

func TestMovieService_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a malformed id without touching the store", func(t *testing.T) {
		store := new(mockMovieStore)
		svc := NewMovieService(store)

		_, err := svc.FindByID(ctx, "12345")

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "movie id: 12345 is invalid, should be 24 characters long", apiErr.Message)
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("returns the stored movie", func(t *testing.T) {
		store := new(mockMovieStore)
		store.On("FindByID", ctx, movieID).Return(model.Movie{ID: movieID, Title: "some-title"}, nil)

		svc := NewMovieService(store)
		movie, err := svc.FindByID(ctx, movieID)

		require.NoError(t, err)
		assert.Equal(t, "some-title", movie.Title)
	})
}

func TestMovieService_Add(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing fields with a field map", func(t *testing.T) {
		store := new(mockMovieStore)
		svc := NewMovieService(store)

		_, err := svc.Add(ctx, model.CreateMovieRequest{Title: "ok-title"})

		var valErr *model.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Fields, "description")
		assert.Contains(t, valErr.Fields, "releaseDate")
		assert.NotContains(t, valErr.Fields, "title")
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("assigns a fresh well-formed id", func(t *testing.T) {
		store := new(mockMovieStore)
		store.On("Create", ctx, mock.AnythingOfType("model.Movie")).Return(nil)

		svc := NewMovieService(store)
		movie, err := svc.Add(ctx, model.CreateMovieRequest{
			Title:       "some-title",
			Description: "a description",
			ReleaseDate: "2021-01-01",
			Genres:      []string{"drama"},
		})

		require.NoError(t, err)
		assert.True(t, util.IsValidObjectID(movie.ID))
		assert.Equal(t, []string{"drama"}, movie.Genres)
		store.AssertExpectations(t)
	})
}

func TestMovieService_Update(t *testing.T) {
	ctx := context.Background()
	stored := model.Movie{
		ID:          movieID,
		Title:       "some-title",
		Description: "old description",
		ReleaseDate: "2021-01-01",
		Genres:      []string{"drama"},
	}

	t.Run("only present fields change", func(t *testing.T) {
		store := new(mockMovieStore)
		store.On("FindByID", ctx, movieID).Return(stored, nil)
		store.On("Update", ctx, mock.AnythingOfType("model.Movie")).Return(nil)

		newTitle := "patched-title"
		svc := NewMovieService(store)
		movie, err := svc.Update(ctx, movieID, model.UpdateMovieRequest{Title: &newTitle})

		require.NoError(t, err)
		assert.Equal(t, "patched-title", movie.Title)
		assert.Equal(t, "old description", movie.Description)
		assert.Equal(t, []string{"drama"}, movie.Genres)
	})

	t.Run("present but too-short field fails validation", func(t *testing.T) {
		store := new(mockMovieStore)
		svc := NewMovieService(store)

		short := "ab"
		_, err := svc.Update(ctx, movieID, model.UpdateMovieRequest{Title: &short})

		var valErr *model.ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Fields, "title")
		store.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown id surfaces the store's not-found", func(t *testing.T) {
		store := new(mockMovieStore)
		notFound := apierror.ObjectNotFound("movie", movieID)
		store.On("FindByID", ctx, movieID).Return(model.Movie{}, notFound)

		svc := NewMovieService(store)
		_, err := svc.Update(ctx, movieID, model.UpdateMovieRequest{})

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Could not find movie with id "+movieID, apiErr.Message)
	})
}

func TestMovieService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id never reaches the store", func(t *testing.T) {
		store := new(mockMovieStore)
		svc := NewMovieService(store)

		err := svc.Delete(ctx, "not-an-id")

		var apiErr *apierror.APIError
		require.ErrorAs(t, err, &apiErr)
		store.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("valid id is passed through", func(t *testing.T) {
		store := new(mockMovieStore)
		store.On("Delete", ctx, movieID).Return(nil)

		svc := NewMovieService(store)
		require.NoError(t, svc.Delete(ctx, movieID))
		store.AssertExpectations(t)
	})
}

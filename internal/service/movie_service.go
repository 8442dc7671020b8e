package service

import (
	"context"
	"time"

	"stream-api/internal/model"
	"stream-api/internal/util"
	"stream-api/pkg/apierror"
)

type MovieStore interface {
	List(ctx context.Context) ([]model.Movie, error)
	FindByID(ctx context.Context, id string) (model.Movie, error)
	Create(ctx context.Context, m model.Movie) error
	Update(ctx context.Context, m model.Movie) error
	Delete(ctx context.Context, id string) error
}

type MovieService struct {
	movies MovieStore
}

func NewMovieService(movies MovieStore) *MovieService {
	return &MovieService{movies: movies}
}

func (s *MovieService) FindAll(ctx context.Context) ([]model.Movie, error) {
	return s.movies.List(ctx)
}

func (s *MovieService) FindByID(ctx context.Context, id string) (model.Movie, error) {
	if !util.IsValidObjectID(id) {
		return model.Movie{}, apierror.InvalidObjectID("movie", id)
	}
	return s.movies.FindByID(ctx, id)
}

func (s *MovieService) Add(ctx context.Context, req model.CreateMovieRequest) (model.Movie, error) {
	if fields := req.Validate(); len(fields) > 0 {
		return model.Movie{}, &model.ValidationError{Fields: fields}
	}

	now := time.Now().UTC()
	movie := model.Movie{
		ID:          util.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		ReleaseDate: req.ReleaseDate,
		Genres:      req.Genres,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.movies.Create(ctx, movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

// Update applies a partial update: only fields present in the request change.
func (s *MovieService) Update(ctx context.Context, id string, req model.UpdateMovieRequest) (model.Movie, error) {
	if !util.IsValidObjectID(id) {
		return model.Movie{}, apierror.InvalidObjectID("movie", id)
	}
	if fields := req.Validate(); len(fields) > 0 {
		return model.Movie{}, &model.ValidationError{Fields: fields}
	}

	movie, err := s.movies.FindByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}

	if req.Title != nil {
		movie.Title = *req.Title
	}
	if req.Description != nil {
		movie.Description = *req.Description
	}
	if req.ReleaseDate != nil {
		movie.ReleaseDate = *req.ReleaseDate
	}
	if req.Genres != nil {
		movie.Genres = req.Genres
	}
	movie.UpdatedAt = time.Now().UTC()

	if err := s.movies.Update(ctx, movie); err != nil {
		return model.Movie{}, err
	}
	return movie, nil
}

func (s *MovieService) Delete(ctx context.Context, id string) error {
	if !util.IsValidObjectID(id) {
		return apierror.InvalidObjectID("movie", id)
	}
	return s.movies.Delete(ctx, id)
}

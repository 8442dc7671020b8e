package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stream-api/internal/model"
	"stream-api/pkg/apierror"
)

type MovieRepository struct {
	pool *pgxpool.Pool
}

func NewMovieRepository(pool *pgxpool.Pool) *MovieRepository {
	return &MovieRepository{pool: pool}
}

const movieColumns = `id, title, description, release_date, genres, created_at, updated_at`

func scanMovie(row pgx.Row) (model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.ReleaseDate, &m.Genres,
		&m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *MovieRepository) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+movieColumns+` FROM movies ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachReviews(ctx, movies); err != nil {
		return nil, err
	}
	return movies, nil
}

func (r *MovieRepository) FindByID(ctx context.Context, id string) (model.Movie, error) {
	m, err := scanMovie(r.pool.QueryRow(ctx,
		`SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))

	if errors.Is(err, pgx.ErrNoRows) {
		return model.Movie{}, apierror.ObjectNotFound("movie", id)
	}
	if err != nil {
		return model.Movie{}, fmt.Errorf("find movie by id: %w", err)
	}

	movies := []model.Movie{m}
	if err := r.attachReviews(ctx, movies); err != nil {
		return model.Movie{}, err
	}
	return movies[0], nil
}

func (r *MovieRepository) Create(ctx context.Context, m model.Movie) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO movies (id, title, description, release_date, genres, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Title, m.Description, m.ReleaseDate, m.Genres, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create movie: %w", err)
	}
	return nil
}

func (r *MovieRepository) Update(ctx context.Context, m model.Movie) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE movies SET title = $2, description = $3, release_date = $4, genres = $5, updated_at = $6
		 WHERE id = $1`,
		m.ID, m.Title, m.Description, m.ReleaseDate, m.Genres, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.ObjectNotFound("movie", m.ID)
	}
	return nil
}

// Delete removes the movie; its reviews go with it via ON DELETE CASCADE.
func (r *MovieRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM movies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movie: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apierror.ObjectNotFound("movie", id)
	}
	return nil
}

func (r *MovieRepository) attachReviews(ctx context.Context, movies []model.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	ids := make([]string, len(movies))
	index := make(map[string]int, len(movies))
	for i, m := range movies {
		ids[i] = m.ID
		index[m.ID] = i
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, movie_id, body FROM reviews WHERE movie_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var review model.Review
		var movieID string
		if err := rows.Scan(&review.ID, &movieID, &review.Body); err != nil {
			return fmt.Errorf("scan review: %w", err)
		}
		if i, ok := index[movieID]; ok {
			movies[i].Reviews = append(movies[i].Reviews, review)
		}
	}
	return rows.Err()
}

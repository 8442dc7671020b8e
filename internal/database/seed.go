package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stream-api/internal/security"
)

type seedUser struct {
	id        string
	firstName string
	lastName  string
	email     string
	password  string
	enabled   bool
	roles     string
}

type seedMovie struct {
	id          string
	title       string
	description string
	releaseDate string
	genres      []string
}

// SeedTestData inserts a known set of users and movies for local development
// and demos. It is a no-op when any user already exists.
func (db *DB) SeedTestData(ctx context.Context) error {
	var count int
	if err := db.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return fmt.Errorf("count users before seed: %w", err)
	}
	if count > 0 {
		slog.Info("seed skipped, users already present", "count", count)
		return nil
	}

	users := []seedUser{
		{"663fed2ac3bb554bca098c60", "john", "doe", "john@test.com", "123456", true, "admin user"},
		{"6641181ad9650d562fa633ab", "jane", "doe", "jane@test.com", "qwerty", true, "user"},
		{"6641181ad9650d562fa633ac", "sam", "smith", "sam@test.com", "123456", false, "user"},
	}
	movies := []seedMovie{
		{"663fed2ac3bb554bca098c59", "some-title", "some-description", "01-01-2020", []string{"Genre 1", "Genre 2"}},
		{"663fed2ac3bb554bca098c58", "some-title-2", "some-description", "01-01-2020", []string{"Genre 1", "Genre 2"}},
	}

	now := time.Now().UTC()
	for _, u := range users {
		hash, err := security.HashPassword(u.password)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", u.email, err)
		}
		_, err = db.Pool.Exec(ctx,
			`INSERT INTO users (id, first_name, last_name, email, password_hash, enabled, roles, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)`,
			u.id, u.firstName, u.lastName, u.email, hash, u.enabled, u.roles, now)
		if err != nil {
			return fmt.Errorf("seed user %s: %w", u.email, err)
		}
	}

	for _, m := range movies {
		_, err := db.Pool.Exec(ctx,
			`INSERT INTO movies (id, title, description, release_date, genres, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $6)`,
			m.id, m.title, m.description, m.releaseDate, m.genres, now)
		if err != nil {
			return fmt.Errorf("seed movie %s: %w", m.title, err)
		}
	}

	slog.Info("test data seeded", "users", len(users), "movies", len(movies))
	return nil
}

package model

import "time"

type Movie struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ReleaseDate string    `json:"releaseDate"`
	Genres      []string  `json:"genres"`
	Reviews     []Review  `json:"reviews,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

type Review struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

package model

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

const minTextLength = 3

type CreateMovieRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ReleaseDate string   `json:"releaseDate"`
	Genres      []string `json:"genres"`
}

func (r CreateMovieRequest) Validate() map[string]string {
	fields := map[string]string{}
	requireText(fields, "title", r.Title)
	requireText(fields, "description", r.Description)
	requireText(fields, "releaseDate", r.ReleaseDate)
	return fields
}

// UpdateMovieRequest is a partial update: absent fields are left untouched,
// present fields must pass the same length rule as on create.
type UpdateMovieRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	ReleaseDate *string  `json:"releaseDate"`
	Genres      []string `json:"genres"`
}

func (r UpdateMovieRequest) Validate() map[string]string {
	fields := map[string]string{}
	requireTextIfPresent(fields, "title", r.Title)
	requireTextIfPresent(fields, "description", r.Description)
	requireTextIfPresent(fields, "releaseDate", r.ReleaseDate)
	return fields
}

type CreateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Enabled   bool   `json:"enabled"`
	Roles     string `json:"roles"`
}

func (r CreateUserRequest) Validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.FirstName) == "" {
		fields["firstName"] = "firstName is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["lastName"] = "lastName is required"
	}
	validateEmail(fields, r.Email)
	if utf8.RuneCountInString(r.Password) < 6 {
		fields["password"] = "password should be at least 6 characters long"
	}
	if strings.TrimSpace(r.Roles) == "" {
		fields["roles"] = "roles are required"
	}
	return fields
}

// UpdateUserRequest replaces the identity fields of a user. The password is
// never updated through this request.
type UpdateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Enabled   bool   `json:"enabled"`
	Roles     string `json:"roles"`
}

func (r UpdateUserRequest) Validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.FirstName) == "" {
		fields["firstName"] = "firstName is required"
	}
	if strings.TrimSpace(r.LastName) == "" {
		fields["lastName"] = "lastName is required"
	}
	validateEmail(fields, r.Email)
	if strings.TrimSpace(r.Roles) == "" {
		fields["roles"] = "roles are required"
	}
	return fields
}

func requireText(fields map[string]string, name string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		fields[name] = name + " is required"
		return
	}
	if utf8.RuneCountInString(trimmed) < minTextLength {
		fields[name] = name + " length must be at least 3"
	}
}

func requireTextIfPresent(fields map[string]string, name string, value *string) {
	if value == nil {
		return
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < minTextLength {
		fields[name] = name + " is required and length must be at least 3, alternatively please remove this field"
	}
}

func validateEmail(fields map[string]string, email string) {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		fields["email"] = "email is required"
		return
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		fields["email"] = "please provide a valid email"
	}
}

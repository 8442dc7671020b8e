package model

import "time"

// User is the stored credential record. The password hash never leaves the
// process: User itself is never serialized outward, only UserInfo is.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Enabled      bool
	Roles        string // space-separated role names, e.g. "admin user"
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserInfo is the outward view of a user: identity fields only.
type UserInfo struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Enabled   bool   `json:"enabled"`
	Roles     string `json:"roles"`
}

func (u User) Info() UserInfo {
	return UserInfo{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Enabled:   u.Enabled,
		Roles:     u.Roles,
	}
}

// LoginInfo is the login response payload.
type LoginInfo struct {
	UserInfo UserInfo `json:"userInfo"`
	Token    string   `json:"token"`
}

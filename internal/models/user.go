package models

import "time"

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)

// User is a registered account. PasswordHash holds the argon2id digest,
// never the plaintext. VerificationToken is assigned at registration and
// is not consumed by any flow yet.
type User struct {
	ID                string
	Email             string
	Name              string
	PasswordHash      []byte
	Role              UserRole
	VerificationToken string
	CreatedAt         time.Time
}

// TokenUser is the minimal projection embedded in session tokens and
// returned from login. It must never carry the password hash.
type TokenUser struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Role UserRole `json:"role"`
}

func NewTokenUser(u User) TokenUser {
	return TokenUser{
		ID:   u.ID,
		Name: u.Name,
		Role: u.Role,
	}
}

package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByID(ctx context.Context, id int64) (User, error)
	GetCredentialsByEmail(ctx context.Context, email string) (Credentials, error)
	Create(ctx context.Context, user NewUser) (User, error)
}

// User represents a registered board member. It never carries the password hash.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Hobby     string    `json:"hobby"`
	Age       int       `json:"age"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Credentials is the authentication view of a user, read only by the login check.
type Credentials struct {
	UserID       int64
	Email        string
	PasswordHash string
}

// NewUser contains attributes of a user to be created.
type NewUser struct {
	Name         string
	Hobby        string
	Age          int
	Email        string
	PasswordHash string
}

// RegisterParams contains registration form values.
type RegisterParams struct {
	Name     string
	Hobby    string
	Age      int
	Email    string
	Password string
}

// MaxPasswordBytes is the longest password the hasher accepts.
const MaxPasswordBytes = 72

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

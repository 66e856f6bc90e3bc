package model

import "time"

// TokenManager generates and validates identity tokens.
type TokenManager interface {
	Generate(userID int64) (IdentityToken, error)
	Parse(token string) (userID int64, jti string, err error)
}

// IdentityToken is an opaque value handed to the client after login.
type IdentityToken struct {
	Value     string
	JTI       string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

package model

import (
	"context"
	"time"
)

// IdentityTTL is the validity window of an identity token.
const IdentityTTL = 7 * 24 * time.Hour

// SessionStore persists issued identity tokens so they can be revoked.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	GetByJTI(ctx context.Context, jti string) (Session, error)
	RevokeByJTI(ctx context.Context, jti string) error
}

// Session is the server-side record of an issued identity token.
type Session struct {
	JTI       string
	UserID    int64
	IssuedAt  time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

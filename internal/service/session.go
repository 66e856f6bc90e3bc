package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

// Sessions issues, resolves and revokes identity tokens. It composes the
// TokenManager with the SessionStore so a token can be revoked before it expires.
type Sessions struct {
	manager model.TokenManager
	store   model.SessionStore
	users   model.UserStore
	logger  *logger.Logger
	now     func() time.Time
}

func NewSessions(manager model.TokenManager, store model.SessionStore, users model.UserStore, logger *logger.Logger) *Sessions {
	return &Sessions{
		manager: manager,
		store:   store,
		users:   users,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Sessions) Issue(ctx context.Context, userID int64) (model.IdentityToken, error) {
	token, err := s.manager.Generate(userID)
	if err != nil {
		return model.IdentityToken{}, fmt.Errorf("failed to generate identity token: %w", err)
	}

	err = s.store.Create(ctx, model.Session{
		JTI:       token.JTI,
		UserID:    userID,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	})
	if err != nil {
		return model.IdentityToken{}, fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// Resolve returns the user a presented token belongs to.
func (s *Sessions) Resolve(ctx context.Context, token string) (model.User, error) {
	userID, jti, err := s.manager.Parse(token)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", model.ErrUnauthenticated, err)
	}

	session, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUnauthenticated
		}
		return model.User{}, fmt.Errorf("failed to get session: %w", err)
	}

	if err := validateSession(session, userID, s.now()); err != nil {
		return model.User{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrUnauthenticated
		}
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return user, nil
}

// Revoke invalidates the session behind token. Tokens that do not parse have nothing to revoke.
func (s *Sessions) Revoke(ctx context.Context, token string) error {
	_, jti, err := s.manager.Parse(token)
	if err != nil {
		s.logger.Debug("Sessions: ignoring revoke of unparsable token",
			"error", err.Error())
		return nil
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

func validateSession(session model.Session, userID int64, now time.Time) error {
	if session.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if !now.Before(session.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if session.UserID != userID {
		return model.ErrUnauthenticated
	}
	return nil
}

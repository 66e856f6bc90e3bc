package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/gophboard-server/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db *Connection
}

func NewSessionRepository(db *Connection) *SessionRepository {
	return &SessionRepository{
		db: db,
	}
}

type sessionRow struct {
	JTI       string       `db:"jti"`
	UserID    int64        `db:"user_id"`
	IssuedAt  time.Time    `db:"issued_at"`
	ExpiresAt time.Time    `db:"expires_at"`
	RevokedAt sql.NullTime `db:"revoked_at"`
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	query := `INSERT INTO sessions (jti, user_id, issued_at, expires_at) VALUES ($1, $2, $3, $4)`

	_, err := r.db.ExecContext(ctx, query, session.JTI, session.UserID, session.IssuedAt, session.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByJTI(ctx context.Context, jti string) (model.Session, error) {
	query := `SELECT jti, user_id, issued_at, expires_at, revoked_at FROM sessions WHERE jti = $1`

	var row sessionRow
	if err := r.db.GetContext(ctx, &row, query, jti); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session by jti: %w", err)
	}

	session := model.Session{
		JTI:       row.JTI,
		UserID:    row.UserID,
		IssuedAt:  row.IssuedAt,
		ExpiresAt: row.ExpiresAt,
	}
	if row.RevokedAt.Valid {
		revokedAt := row.RevokedAt.Time
		session.RevokedAt = &revokedAt
	}

	return session, nil
}

// RevokeByJTI marks the session revoked. Revoking an unknown or already revoked session is not an error.
func (r *SessionRepository) RevokeByJTI(ctx context.Context, jti string) error {
	query := `UPDATE sessions SET revoked_at = NOW() WHERE jti = $1 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, jti); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	return nil
}

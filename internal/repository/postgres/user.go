package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/gophboard-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

type userRow struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Hobby     string    `db:"hobby"`
	Age       int       `db:"age"`
	Email     string    `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

func (r userRow) toModel() model.User {
	return model.User{
		ID:        r.ID,
		Name:      r.Name,
		Hobby:     r.Hobby,
		Age:       r.Age,
		Email:     r.Email,
		CreatedAt: r.CreatedAt,
	}
}

type credentialsRow struct {
	ID           int64  `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	query := `SELECT id, name, hobby, age, email, created_at FROM users WHERE id = $1`

	var row userRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return row.toModel(), nil
}

func (r *UserRepository) GetCredentialsByEmail(ctx context.Context, email string) (model.Credentials, error) {
	query := `SELECT id, email, password_hash FROM users WHERE email = $1`

	var row credentialsRow
	if err := r.db.GetContext(ctx, &row, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Credentials{}, model.ErrNotFound
		}
		return model.Credentials{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.Credentials{
		UserID:       row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
	}, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.NewUser) (model.User, error) {
	query := `INSERT INTO users (name, hobby, age, email, password_hash)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id, name, hobby, age, email, created_at`

	var row userRow
	err := r.db.GetContext(ctx, &row, query, user.Name, user.Hobby, user.Age, user.Email, user.PasswordHash)
	if err != nil {
		if pgErrorCode(err) == uniqueViolation {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return row.toModel(), nil
}

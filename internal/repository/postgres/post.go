package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dtroode/gophboard-server/internal/model"
)

var _ model.PostStore = (*PostRepository)(nil)

type PostRepository struct {
	db *Connection
}

func NewPostRepository(db *Connection) *PostRepository {
	return &PostRepository{
		db: db,
	}
}

type postRow struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	UserID    int64     `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}

type boardRow struct {
	ID               int64          `db:"id"`
	Title            string         `db:"title"`
	Content          string         `db:"content"`
	CreatedAt        time.Time      `db:"created_at"`
	UserID           int64          `db:"user_id"`
	UserName         string         `db:"user_name"`
	FileID           sql.NullInt64  `db:"file_id"`
	FileName         sql.NullString `db:"file_name"`
	FileOriginalName sql.NullString `db:"file_original_name"`
	FileCreatedAt    sql.NullTime   `db:"file_created_at"`
}

func (r boardRow) toModel() model.BoardPost {
	post := model.BoardPost{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		CreatedAt: r.CreatedAt,
		Owner: model.Owner{
			ID:   r.UserID,
			Name: r.UserName,
		},
	}
	if r.FileID.Valid {
		post.File = &model.File{
			ID:           r.FileID.Int64,
			PostID:       r.ID,
			StoredName:   r.FileName.String,
			OriginalName: r.FileOriginalName.String,
			CreatedAt:    r.FileCreatedAt.Time,
		}
	}
	return post
}

func (r *PostRepository) Create(ctx context.Context, post model.Post) (model.Post, error) {
	query := `INSERT INTO posts (title, content, user_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, title, content, user_id, created_at`

	var row postRow
	if err := r.db.GetContext(ctx, &row, query, post.Title, post.Content, post.OwnerID); err != nil {
		if pgErrorCode(err) == foreignKeyViolation {
			return model.Post{}, fmt.Errorf("owner %d: %w", post.OwnerID, model.ErrNotFound)
		}
		return model.Post{}, fmt.Errorf("failed to create post: %w", err)
	}

	return model.Post{
		ID:        row.ID,
		Title:     row.Title,
		Content:   row.Content,
		OwnerID:   row.UserID,
		CreatedAt: row.CreatedAt,
	}, nil
}

// ListWithOwners returns every post in insertion order with its owner and attachment.
func (r *PostRepository) ListWithOwners(ctx context.Context) ([]model.BoardPost, error) {
	query := `
		SELECT p.id, p.title, p.content, p.created_at,
		       u.id AS user_id, u.name AS user_name,
		       f.id AS file_id, f.filename AS file_name,
		       f.original_name AS file_original_name, f.created_at AS file_created_at
		FROM posts p
		JOIN users u ON u.id = p.user_id
		LEFT JOIN files f ON f.post_id = p.id
		ORDER BY p.id ASC`

	var rows []boardRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]model.BoardPost, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}

	return posts, nil
}

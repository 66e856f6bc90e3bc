package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtroode/gophboard-server/internal/model"
)

var _ model.FileStore = (*FileRepository)(nil)

type FileRepository struct {
	db *Connection
}

func NewFileRepository(db *Connection) *FileRepository {
	return &FileRepository{
		db: db,
	}
}

type fileRow struct {
	ID           int64     `db:"id"`
	StoredName   string    `db:"filename"`
	OriginalName string    `db:"original_name"`
	PostID       int64     `db:"post_id"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r fileRow) toModel() model.File {
	return model.File{
		ID:           r.ID,
		PostID:       r.PostID,
		StoredName:   r.StoredName,
		OriginalName: r.OriginalName,
		CreatedAt:    r.CreatedAt,
	}
}

func (r *FileRepository) Create(ctx context.Context, file model.File) (model.File, error) {
	query := `INSERT INTO files (filename, original_name, post_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, filename, original_name, post_id, created_at`

	var row fileRow
	if err := r.db.GetContext(ctx, &row, query, file.StoredName, file.OriginalName, file.PostID); err != nil {
		switch pgErrorCode(err) {
		case uniqueViolation:
			return model.File{}, fmt.Errorf("post %d already has an attachment or name %q is taken: %w", file.PostID, file.StoredName, err)
		case foreignKeyViolation:
			return model.File{}, fmt.Errorf("post %d: %w", file.PostID, model.ErrNotFound)
		}
		return model.File{}, fmt.Errorf("failed to create file: %w", err)
	}

	return row.toModel(), nil
}

func (r *FileRepository) GetByID(ctx context.Context, id int64) (model.File, error) {
	query := `SELECT id, filename, original_name, post_id, created_at FROM files WHERE id = $1`

	var row fileRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.File{}, model.ErrNotFound
		}
		return model.File{}, fmt.Errorf("failed to get file by id: %w", err)
	}

	return row.toModel(), nil
}

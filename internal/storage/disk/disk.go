package disk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dtroode/gophboard-server/internal/model"
)

var _ model.Storage = (*Storage)(nil)

// Storage keeps attachments as plain files inside a single directory.
type Storage struct {
	dir string
}

// New creates the upload directory if needed.
func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}

	return &Storage{dir: dir}, nil
}

// Upload writes the object to a new file. An existing file with the same key is never overwritten.
func (s *Storage) Upload(ctx context.Context, object model.Object) error {
	path, err := s.path(object.Key)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", object.Key, err)
	}

	_, err = io.Copy(f, contextReader{ctx: ctx, r: object.Body})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("failed to write file %s: %w", object.Key, err)
	}

	return nil
}

func (s *Storage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, model.ErrNotFound
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to open file %s: %w", key, err)
	}

	return f, nil
}

func (s *Storage) Delete(_ context.Context, key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove file %s: %w", key, err)
	}

	return nil
}

// Location returns the on-disk path of key.
func (s *Storage) Location(key string) string {
	return filepath.Join(s.dir, key)
}

// path rejects keys that would escape the upload directory.
func (s *Storage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid file key %q: %w", key, model.ErrInvalidInput)
	}
	return filepath.Join(s.dir, key), nil
}

// contextReader stops a copy once the request context is done.
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

package model

import (
	"context"
	"io"
)

// Storage keeps attachment content addressed by stored name.
// Download reports ErrNotFound when no content exists for the key.
type Storage interface {
	Upload(ctx context.Context, object Object) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Location(key string) string
}

// Object is attachment content handed to Storage. Size is -1 when unknown.
type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

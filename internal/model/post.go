package model

import (
	"context"
	"io"
	"time"
)

// PostStore defines persistence operations for board posts.
type PostStore interface {
	Create(ctx context.Context, post Post) (Post, error)
	ListWithOwners(ctx context.Context) ([]BoardPost, error)
}

// FileStore defines persistence operations for post attachments.
type FileStore interface {
	Create(ctx context.Context, file File) (File, error)
	GetByID(ctx context.Context, id int64) (File, error)
}

// Post represents a stored board post.
type Post struct {
	ID        int64
	Title     string
	Content   string
	OwnerID   int64
	CreatedAt time.Time
}

// File represents an attachment record. StoredName is the key of the
// content in attachment storage and is never sent to clients; OriginalName
// is what the uploader sent.
type File struct {
	ID           int64     `json:"id"`
	PostID       int64     `json:"post_id"`
	StoredName   string    `json:"-"`
	OriginalName string    `json:"original_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// Owner is the public part of a post author.
type Owner struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// BoardPost is a post enriched for the board listing.
type BoardPost struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	Owner     Owner     `json:"user"`
	File      *File     `json:"file,omitempty"`
}

// Upload is a single file received with a post.
type Upload struct {
	OriginalName string
	ContentType  string
	Size         int64
	Body         io.Reader
}

// CreatePostParams contains parameters to create a post.
type CreatePostParams struct {
	Owner      *User
	Title      string
	Content    string
	Attachment *Upload
}

// Download describes a resolved attachment ready to be streamed.
type Download struct {
	FileID       int64
	StoredPath   string
	DownloadName string
	ContentType  string
	Body         io.ReadCloser
}

package model

import (
	"context"
	"time"
)

// EventPublisher announces board changes to interested consumers.
type EventPublisher interface {
	PublishPostCreated(ctx context.Context, event PostCreatedEvent) error
}

// PostCreatedEvent is published after a post has been stored.
type PostCreatedEvent struct {
	PostID    int64     `json:"post_id"`
	OwnerID   int64     `json:"owner_id"`
	Title     string    `json:"title"`
	FileID    *int64    `json:"file_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

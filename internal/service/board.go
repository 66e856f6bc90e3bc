package service

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

const defaultContentType = "application/octet-stream"

type Board struct {
	postStore model.PostStore
	fileStore model.FileStore
	storage   model.Storage
	events    model.EventPublisher
	logger    *logger.Logger
	now       func() time.Time
}

func NewBoard(
	postStore model.PostStore,
	fileStore model.FileStore,
	storage model.Storage,
	events model.EventPublisher,
	logger *logger.Logger,
) *Board {
	return &Board{
		postStore: postStore,
		fileStore: fileStore,
		storage:   storage,
		events:    events,
		logger:    logger,
		now:       time.Now,
	}
}

// ListPosts returns the board in creation order.
func (b *Board) ListPosts(ctx context.Context) ([]model.BoardPost, error) {
	posts, err := b.postStore.ListWithOwners(ctx)
	if err != nil {
		b.logger.Error("Board service: failed to list posts",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	if posts == nil {
		posts = []model.BoardPost{}
	}

	return posts, nil
}

// CreatePost stores a post owned by params.Owner together with its optional attachment.
// The attachment bytes are written before any record. If the file record cannot be
// written the post is kept without an attachment and the error is still returned.
func (b *Board) CreatePost(ctx context.Context, params model.CreatePostParams) (model.BoardPost, error) {
	if params.Owner == nil || params.Owner.ID == 0 {
		return model.BoardPost{}, model.ErrUnauthenticated
	}

	ownerID := params.Owner.ID
	title := strings.TrimSpace(params.Title)
	if title == "" {
		return model.BoardPost{}, fmt.Errorf("title is required: %w", model.ErrInvalidInput)
	}

	b.logger.Debug("Board service: creating post",
		"owner_id", ownerID,
		"with_attachment", params.Attachment != nil)

	var storedName string
	if params.Attachment != nil {
		storedName = StoredName(params.Attachment.OriginalName, b.now())

		err := b.storage.Upload(ctx, model.Object{
			Key:         storedName,
			ContentType: attachmentContentType(params.Attachment),
			Size:        params.Attachment.Size,
			Body:        params.Attachment.Body,
		})
		if err != nil {
			b.logger.Error("Board service: failed to store attachment",
				"owner_id", ownerID,
				"stored_name", storedName,
				"error", err.Error())
			return model.BoardPost{}, fmt.Errorf("failed to store attachment: %w", err)
		}
	}

	post, err := b.postStore.Create(ctx, model.Post{
		Title:   title,
		Content: params.Content,
		OwnerID: ownerID,
	})
	if err != nil {
		b.logger.Error("Board service: failed to create post",
			"owner_id", ownerID,
			"error", err.Error())
		if storedName != "" {
			b.discardAttachment(ctx, storedName)
		}
		return model.BoardPost{}, fmt.Errorf("failed to create post: %w", err)
	}

	result := model.BoardPost{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		Owner: model.Owner{
			ID:   ownerID,
			Name: params.Owner.Name,
		},
	}

	if storedName != "" {
		file, err := b.fileStore.Create(ctx, model.File{
			PostID:       post.ID,
			StoredName:   storedName,
			OriginalName: params.Attachment.OriginalName,
		})
		if err != nil {
			b.logger.Error("Board service: failed to record attachment, post kept without it",
				"post_id", post.ID,
				"stored_name", storedName,
				"error", err.Error())
			b.discardAttachment(ctx, storedName)
			b.publishPostCreated(ctx, result)
			return result, fmt.Errorf("failed to record attachment: %w", err)
		}
		result.File = &file
	}

	b.publishPostCreated(ctx, result)

	b.logger.Info("Board service: post created",
		"post_id", result.ID,
		"owner_id", ownerID)

	return result, nil
}

// ResolveDownload opens the attachment with id fileID.
// Missing records and missing content both yield ErrNotFound.
func (b *Board) ResolveDownload(ctx context.Context, fileID int64) (model.Download, error) {
	file, err := b.fileStore.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.Download{}, model.ErrNotFound
		}
		b.logger.Error("Board service: failed to get file",
			"file_id", fileID,
			"error", err.Error())
		return model.Download{}, fmt.Errorf("failed to get file: %w", err)
	}

	body, err := b.storage.Download(ctx, file.StoredName)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			b.logger.Warn("Board service: file record without content",
				"file_id", fileID,
				"stored_name", file.StoredName)
			return model.Download{}, model.ErrNotFound
		}
		b.logger.Error("Board service: failed to open attachment",
			"file_id", fileID,
			"error", err.Error())
		return model.Download{}, fmt.Errorf("failed to open attachment: %w", err)
	}

	return model.Download{
		FileID:       file.ID,
		StoredPath:   b.storage.Location(file.StoredName),
		DownloadName: file.OriginalName,
		ContentType:  contentTypeByName(file.OriginalName),
		Body:         body,
	}, nil
}

// StoredName derives the storage key of an upload: the base name of original
// without its extension, the Unix time of now in milliseconds, then the extension.
func StoredName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}

	ext := filepath.Ext(base)
	if ext == base {
		ext = ""
	}

	return strings.TrimSuffix(base, ext) + strconv.FormatInt(now.UnixMilli(), 10) + ext
}

func (b *Board) discardAttachment(ctx context.Context, storedName string) {
	if err := b.storage.Delete(ctx, storedName); err != nil {
		b.logger.Error("Board service: failed to remove orphaned attachment",
			"stored_name", storedName,
			"error", err.Error())
	}
}

func (b *Board) publishPostCreated(ctx context.Context, post model.BoardPost) {
	event := model.PostCreatedEvent{
		PostID:    post.ID,
		OwnerID:   post.Owner.ID,
		Title:     post.Title,
		CreatedAt: post.CreatedAt,
	}
	if post.File != nil {
		fileID := post.File.ID
		event.FileID = &fileID
	}

	if err := b.events.PublishPostCreated(ctx, event); err != nil {
		b.logger.Warn("Board service: failed to publish post created event",
			"post_id", post.ID,
			"error", err.Error())
	}
}

func attachmentContentType(upload *model.Upload) string {
	if upload.ContentType != "" {
		return upload.ContentType
	}
	return contentTypeByName(upload.OriginalName)
}

func contentTypeByName(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}

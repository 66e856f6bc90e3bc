package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

const (
	attachmentField = "file"
	maxFormMemory   = 8 << 20
)

// BoardService is the posting side of the board.
type BoardService interface {
	ListPosts(ctx context.Context) ([]model.BoardPost, error)
	CreatePost(ctx context.Context, params model.CreatePostParams) (model.BoardPost, error)
	ResolveDownload(ctx context.Context, fileID int64) (model.Download, error)
}

type Board struct {
	service        BoardService
	contextManager model.ContextManager
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewBoard(service BoardService, contextManager model.ContextManager, maxUploadBytes int64, logger *logger.Logger) *Board {
	return &Board{
		service:        service,
		contextManager: contextManager,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type boardResponse struct {
	Posts []model.BoardPost `json:"posts"`
}

// List handles GET /board.
func (h *Board) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, boardResponse{Posts: []model.BoardPost{}}, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, boardResponse{Posts: posts}, h.logger)
}

// Create handles POST /post with an optional single attachment in the "file" field.
func (h *Board) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := h.contextManager.GetUserFromContext(r.Context())
	if !ok {
		respondWithResult(w, http.StatusUnauthorized, resultPost, h.logger)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	attachment, cleanup, err := h.readPostForm(r)
	if err != nil {
		h.logger.Info("Board handler: malformed post form",
			"user_id", user.ID,
			"error", err.Error())
		respondWithResult(w, statusFromError(err), resultPost, h.logger)
		return
	}
	defer cleanup()

	_, err = h.service.CreatePost(r.Context(), model.CreatePostParams{
		Owner:      &user,
		Title:      r.FormValue("title"),
		Content:    r.FormValue("content"),
		Attachment: attachment,
	})
	if err != nil {
		respondWithResult(w, statusFromError(err), resultPost, h.logger)
		return
	}

	respondWithResult(w, http.StatusOK, resultPost, h.logger)
}

func (h *Board) readPostForm(r *http.Request) (*model.Upload, func(), error) {
	noop := func() {}

	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		if err := r.ParseForm(); err != nil {
			return nil, noop, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
		}
		return nil, noop, nil
	}
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, noop, err
		}
		return nil, noop, fmt.Errorf("%w: %v", model.ErrInvalidInput, err)
	}

	cleanup := func() { _ = r.MultipartForm.RemoveAll() }

	headers := r.MultipartForm.File[attachmentField]
	switch {
	case len(headers) == 0:
		return nil, cleanup, nil
	case len(headers) > 1:
		cleanup()
		return nil, noop, fmt.Errorf("only one attachment is allowed: %w", model.ErrInvalidInput)
	}

	upload, err := openUpload(headers[0])
	if err != nil {
		cleanup()
		return nil, noop, err
	}

	return upload, func() {
		if closer, ok := upload.Body.(io.Closer); ok {
			_ = closer.Close()
		}
		cleanup()
	}, nil
}

func openUpload(header *multipart.FileHeader) (*model.Upload, error) {
	if header.Filename == "" {
		return nil, fmt.Errorf("attachment has no file name: %w", model.ErrInvalidInput)
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}

	return &model.Upload{
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         f,
	}, nil
}

// Download handles GET /download/{id}.
func (h *Board) Download(w http.ResponseWriter, r *http.Request) {
	fileID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || fileID <= 0 {
		http.NotFound(w, r)
		return
	}

	download, err := h.service.ResolveDownload(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	defer download.Body.Close()

	w.Header().Set("Content-Type", download.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": download.DownloadName,
	}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, download.Body); err != nil {
		h.logger.Error("Board handler: failed to stream attachment",
			"file_id", fileID,
			"error", err.Error())
	}
}

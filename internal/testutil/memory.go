package testutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/dtroode/gophboard-server/internal/model"
)

// MemoryDB is an in-memory relational store with the same constraints as the
// Postgres schema: unique emails, one attachment per post, owners must exist.
type MemoryDB struct {
	mu       sync.RWMutex
	users    map[int64]model.User
	hashes   map[int64]string
	sessions map[string]model.Session
	posts    map[int64]model.Post
	files    map[int64]model.File
	nextID   map[string]int64
	now      func() time.Time
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		users:    make(map[int64]model.User),
		hashes:   make(map[int64]string),
		sessions: make(map[string]model.Session),
		posts:    make(map[int64]model.Post),
		files:    make(map[int64]model.File),
		nextID:   make(map[string]int64),
		now:      time.Now,
	}
}

func (db *MemoryDB) Users() *MemoryUsers       { return &MemoryUsers{db: db} }
func (db *MemoryDB) Sessions() *MemorySessions { return &MemorySessions{db: db} }
func (db *MemoryDB) Posts() *MemoryPosts       { return &MemoryPosts{db: db} }
func (db *MemoryDB) Files() *MemoryFiles       { return &MemoryFiles{db: db} }

// PostCount returns the number of stored posts.
func (db *MemoryDB) PostCount() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.posts)
}

func (db *MemoryDB) id(table string) int64 {
	db.nextID[table]++
	return db.nextID[table]
}

type MemoryUsers struct{ db *MemoryDB }

var _ model.UserStore = (*MemoryUsers)(nil)

func (s *MemoryUsers) GetByID(_ context.Context, id int64) (model.User, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	user, ok := s.db.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

func (s *MemoryUsers) GetCredentialsByEmail(_ context.Context, email string) (model.Credentials, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	for id, user := range s.db.users {
		if user.Email == email {
			return model.Credentials{UserID: id, Email: email, PasswordHash: s.db.hashes[id]}, nil
		}
	}
	return model.Credentials{}, model.ErrNotFound
}

func (s *MemoryUsers) Create(_ context.Context, newUser model.NewUser) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, user := range s.db.users {
		if user.Email == newUser.Email {
			return model.User{}, model.ErrEmailTaken
		}
	}

	user := model.User{
		ID:        s.db.id("users"),
		Name:      newUser.Name,
		Hobby:     newUser.Hobby,
		Age:       newUser.Age,
		Email:     newUser.Email,
		CreatedAt: s.db.now(),
	}
	s.db.users[user.ID] = user
	s.db.hashes[user.ID] = newUser.PasswordHash

	return user, nil
}

type MemorySessions struct{ db *MemoryDB }

var _ model.SessionStore = (*MemorySessions)(nil)

func (s *MemorySessions) Create(_ context.Context, session model.Session) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[session.UserID]; !ok {
		return fmt.Errorf("user %d: %w", session.UserID, model.ErrNotFound)
	}
	if _, ok := s.db.sessions[session.JTI]; ok {
		return fmt.Errorf("session %s already exists", session.JTI)
	}
	s.db.sessions[session.JTI] = session
	return nil
}

func (s *MemorySessions) GetByJTI(_ context.Context, jti string) (model.Session, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	session, ok := s.db.sessions[jti]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}
	return session, nil
}

func (s *MemorySessions) RevokeByJTI(_ context.Context, jti string) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	session, ok := s.db.sessions[jti]
	if !ok || session.RevokedAt != nil {
		return nil
	}
	now := s.db.now()
	session.RevokedAt = &now
	s.db.sessions[jti] = session
	return nil
}

type MemoryPosts struct{ db *MemoryDB }

var _ model.PostStore = (*MemoryPosts)(nil)

func (s *MemoryPosts) Create(_ context.Context, post model.Post) (model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[post.OwnerID]; !ok {
		return model.Post{}, fmt.Errorf("owner %d: %w", post.OwnerID, model.ErrNotFound)
	}

	post.ID = s.db.id("posts")
	post.CreatedAt = s.db.now()
	s.db.posts[post.ID] = post

	return post, nil
}

func (s *MemoryPosts) ListWithOwners(_ context.Context) ([]model.BoardPost, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	byPost := make(map[int64]model.File, len(s.db.files))
	for _, file := range s.db.files {
		byPost[file.PostID] = file
	}

	posts := make([]model.BoardPost, 0, len(s.db.posts))
	for _, post := range s.db.posts {
		owner := s.db.users[post.OwnerID]
		entry := model.BoardPost{
			ID:        post.ID,
			Title:     post.Title,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
			Owner:     model.Owner{ID: owner.ID, Name: owner.Name},
		}
		if file, ok := byPost[post.ID]; ok {
			entry.File = &file
		}
		posts = append(posts, entry)
	}
	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })

	return posts, nil
}

type MemoryFiles struct{ db *MemoryDB }

var _ model.FileStore = (*MemoryFiles)(nil)

func (s *MemoryFiles) Create(_ context.Context, file model.File) (model.File, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.posts[file.PostID]; !ok {
		return model.File{}, fmt.Errorf("post %d: %w", file.PostID, model.ErrNotFound)
	}
	for _, existing := range s.db.files {
		if existing.PostID == file.PostID || existing.StoredName == file.StoredName {
			return model.File{}, fmt.Errorf("post %d already has an attachment or name %q is taken", file.PostID, file.StoredName)
		}
	}

	file.ID = s.db.id("files")
	file.CreatedAt = s.db.now()
	s.db.files[file.ID] = file

	return file, nil
}

func (s *MemoryFiles) GetByID(_ context.Context, id int64) (model.File, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	file, ok := s.db.files[id]
	if !ok {
		return model.File{}, model.ErrNotFound
	}
	return file, nil
}

// MemoryStorage keeps attachment content in memory.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

var _ model.Storage = (*MemoryStorage)(nil)

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

func (s *MemoryStorage) Upload(_ context.Context, object model.Object) error {
	data, err := io.ReadAll(object.Body)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[object.Key]; ok {
		return fmt.Errorf("object %s already exists", object.Key)
	}
	s.objects[object.Key] = data
	return nil
}

func (s *MemoryStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, model.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) Location(key string) string {
	return "memory/" + key
}

// Keys returns the stored object keys in lexical order.
func (s *MemoryStorage) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.objects))
	for key := range s.objects {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

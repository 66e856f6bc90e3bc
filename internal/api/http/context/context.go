package context

import (
	"context"

	"github.com/dtroode/gophboard-server/internal/model"
)

type ctxKey struct{}

var currentUserKey = ctxKey{}

var _ model.ContextManager = (*Manager)(nil)

// Manager stores the current user of a request in its context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUserToContext returns a copy of ctx carrying user.
func (m *Manager) SetUserToContext(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, currentUserKey, user)
}

// GetUserFromContext returns the current user. The second value is false for anonymous requests.
func (m *Manager) GetUserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(currentUserKey).(model.User)
	if !ok || user.ID == 0 {
		return model.User{}, false
	}
	return user, true
}

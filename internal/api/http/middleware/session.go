package middleware

import (
	"context"
	"net/http"

	"github.com/dtroode/gophboard-server/internal/api/http/identity"
	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

// SessionResolver resolves an identity token to a user.
type SessionResolver interface {
	CurrentUser(ctx context.Context, token string) (model.User, bool)
}

// Session attaches the current user, if any, to every request.
type Session struct {
	resolver       SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

func NewSession(resolver SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Session {
	return &Session{
		resolver:       resolver,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle never rejects a request. Requests without a valid token proceed anonymously.
func (m *Session) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := identity.TokenFromRequest(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		user, ok := m.resolver.CurrentUser(r.Context(), token)
		if !ok {
			m.logger.Debug("Session middleware: token did not resolve to a user",
				"path", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(m.contextManager.SetUserToContext(r.Context(), user)))
	})
}

// RequireUser passes only requests with a current user and answers the rest with denied.
func RequireUser(contextManager model.ContextManager, denied http.Handler) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := contextManager.GetUserFromContext(r.Context()); !ok {
				denied.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

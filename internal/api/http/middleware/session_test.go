package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpcontext "github.com/dtroode/gophboard-server/internal/api/http/context"
	"github.com/dtroode/gophboard-server/internal/api/http/identity"
	"github.com/dtroode/gophboard-server/internal/model"
	"github.com/dtroode/gophboard-server/internal/testutil"
)

type fakeResolver struct {
	users  map[string]model.User
	called int
}

func (f *fakeResolver) CurrentUser(_ context.Context, token string) (model.User, bool) {
	f.called++
	user, ok := f.users[token]
	return user, ok
}

func TestSession_Handle(t *testing.T) {
	alice := model.User{ID: 1, Name: "Alice"}

	tests := []struct {
		name       string
		cookie     string
		bearer     string
		wantUser   bool
		wantLookup int
	}{
		{name: "no token", wantLookup: 0},
		{name: "valid cookie", cookie: "good", wantUser: true, wantLookup: 1},
		{name: "valid bearer", bearer: "good", wantUser: true, wantLookup: 1},
		{name: "unknown token", cookie: "stale", wantLookup: 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			resolver := &fakeResolver{users: map[string]model.User{"good": alice}}
			cm := httpcontext.NewManager()
			mw := NewSession(resolver, cm, testutil.MakeNoopLogger())

			var (
				reached bool
				gotUser model.User
				gotOK   bool
			)
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				gotUser, gotOK = cm.GetUserFromContext(r.Context())
			})

			r := httptest.NewRequest(http.MethodGet, "/board", nil)
			if tt.cookie != "" {
				r.AddCookie(&http.Cookie{Name: identity.CookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				r.Header.Set("Authorization", "Bearer "+tt.bearer)
			}

			mw.Handle(next).ServeHTTP(httptest.NewRecorder(), r)

			require.True(t, reached)
			assert.Equal(t, tt.wantUser, gotOK)
			if tt.wantUser {
				assert.Equal(t, alice, gotUser)
			}
			assert.Equal(t, tt.wantLookup, resolver.called)
		})
	}
}

func TestRequireUser(t *testing.T) {
	cm := httpcontext.NewManager()
	denied := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	t.Run("anonymous is denied", func(t *testing.T) {
		var reached bool
		h := RequireUser(cm, denied)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/post", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.False(t, reached)
	})

	t.Run("user passes", func(t *testing.T) {
		var reached bool
		h := RequireUser(cm, denied)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
		}))

		r := httptest.NewRequest(http.MethodPost, "/post", nil)
		r = r.WithContext(cm.SetUserToContext(r.Context(), model.User{ID: 1}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, reached)
	})
}

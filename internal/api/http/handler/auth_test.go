package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophboard-server/internal/api/http/identity"
	"github.com/dtroode/gophboard-server/internal/mocks"
	"github.com/dtroode/gophboard-server/internal/model"
	"github.com/dtroode/gophboard-server/internal/testutil"
)

func formRequest(target string, values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestAuth_Register(t *testing.T) {
	form := url.Values{
		"name":     {"Alice"},
		"hobby":    {"chess"},
		"age":      {"30"},
		"email":    {"alice@example.com"},
		"password": {"s3cret"},
	}
	params := model.RegisterParams{
		Name:     "Alice",
		Hobby:    "chess",
		Age:      30,
		Email:    "alice@example.com",
		Password: "s3cret",
	}

	tests := []struct {
		name       string
		form       url.Values
		serviceErr error
		callsSvc   bool
		wantStatus int
		wantBody   string
	}{
		{
			name:       "success",
			form:       form,
			callsSvc:   true,
			wantStatus: http.StatusOK,
			wantBody:   `{"type":"register","result":true}`,
		},
		{
			name:       "email taken",
			form:       form,
			serviceErr: model.ErrEmailTaken,
			callsSvc:   true,
			wantStatus: http.StatusConflict,
			wantBody:   `{"type":"register","result":false}`,
		},
		{
			name:       "invalid input",
			form:       form,
			serviceErr: model.ErrInvalidInput,
			callsSvc:   true,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"type":"register","result":false}`,
		},
		{
			name:       "store failure is not leaked",
			form:       form,
			serviceErr: assert.AnError,
			callsSvc:   true,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"type":"register","result":false}`,
		},
		{
			name:       "malformed age",
			form:       url.Values{"name": {"Alice"}, "age": {"old"}, "email": {"a@b.c"}, "password": {"x"}},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"type":"register","result":false}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			svc := mocks.NewAuthService(t)
			if tt.callsSvc {
				svc.On("Register", mock.Anything, params).Return(model.User{ID: 1}, tt.serviceErr).Once()
			}
			h := NewAuth(svc, false, testutil.MakeNoopLogger())

			w := httptest.NewRecorder()
			h.Register(w, formRequest("/register", tt.form))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
			assert.Empty(t, w.Result().Cookies())
		})
	}
}

func TestAuth_Login(t *testing.T) {
	form := url.Values{"email": {"alice@example.com"}, "password": {"s3cret"}}

	t.Run("success sets identity cookie", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		token := model.IdentityToken{Value: "signed", ExpiresAt: time.Now().Add(model.IdentityTTL)}
		svc.On("Login", mock.Anything, "alice@example.com", "s3cret").Return(token, nil).Once()
		h := NewAuth(svc, true, testutil.MakeNoopLogger())

		w := httptest.NewRecorder()
		h.Login(w, formRequest("/login", form))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"type":"login","result":true}`, w.Body.String())

		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, identity.CookieName, cookies[0].Name)
		assert.Equal(t, "signed", cookies[0].Value)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
	})

	t.Run("bad credentials issue no cookie", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Login", mock.Anything, "alice@example.com", "s3cret").
			Return(model.IdentityToken{}, model.ErrInvalidCredentials).Once()
		h := NewAuth(svc, false, testutil.MakeNoopLogger())

		w := httptest.NewRecorder()
		h.Login(w, formRequest("/login", form))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"type":"login","result":false}`, w.Body.String())
		assert.Empty(t, w.Result().Cookies())
	})
}

func TestAuth_Logout(t *testing.T) {
	t.Run("revokes token and redirects", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Logout", mock.Anything, "signed").Return(nil).Once()
		h := NewAuth(svc, false, testutil.MakeNoopLogger())

		r := httptest.NewRequest(http.MethodGet, "/logout", nil)
		r.AddCookie(&http.Cookie{Name: identity.CookieName, Value: "signed"})
		w := httptest.NewRecorder()
		h.Logout(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
		cookies := w.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
	})

	t.Run("without session still redirects", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Logout", mock.Anything, "").Return(nil).Once()
		h := NewAuth(svc, false, testutil.MakeNoopLogger())

		w := httptest.NewRecorder()
		h.Logout(w, httptest.NewRequest(http.MethodGet, "/logout", nil))

		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("revocation failure still clears cookie", func(t *testing.T) {
		svc := mocks.NewAuthService(t)
		svc.On("Logout", mock.Anything, "signed").Return(assert.AnError).Once()
		h := NewAuth(svc, false, testutil.MakeNoopLogger())

		r := httptest.NewRequest(http.MethodGet, "/logout", nil)
		r.AddCookie(&http.Cookie{Name: identity.CookieName, Value: "signed"})
		w := httptest.NewRecorder()
		h.Logout(w, r)

		assert.Equal(t, http.StatusFound, w.Code)
		require.Len(t, w.Result().Cookies(), 1)
	})
}

func TestParseAge(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: " 42 ", want: 42},
		{raw: "-3", want: -3},
		{raw: "forty", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseAge(tt.raw)
		if tt.wantErr {
			assert.Error(t, err, tt.raw)
			continue
		}
		assert.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got, tt.raw)
	}
}

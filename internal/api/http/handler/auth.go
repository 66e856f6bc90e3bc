package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dtroode/gophboard-server/internal/api/http/identity"
	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

// AuthService is the account side of the board.
type AuthService interface {
	Register(ctx context.Context, params model.RegisterParams) (model.User, error)
	Login(ctx context.Context, email, password string) (model.IdentityToken, error)
	Logout(ctx context.Context, token string) error
}

type Auth struct {
	service      AuthService
	secureCookie bool
	logger       *logger.Logger
}

func NewAuth(service AuthService, secureCookie bool, logger *logger.Logger) *Auth {
	return &Auth{
		service:      service,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

// Register handles POST /register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Info("Auth handler: malformed registration form", "error", err.Error())
		respondWithResult(w, http.StatusBadRequest, resultRegister, h.logger)
		return
	}

	age, err := parseAge(r.FormValue("age"))
	if err != nil {
		h.logger.Info("Auth handler: malformed age", "age", r.FormValue("age"))
		respondWithResult(w, http.StatusBadRequest, resultRegister, h.logger)
		return
	}

	_, err = h.service.Register(r.Context(), model.RegisterParams{
		Name:     r.FormValue("name"),
		Hobby:    r.FormValue("hobby"),
		Age:      age,
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
	})
	if err != nil {
		respondWithResult(w, statusFromError(err), resultRegister, h.logger)
		return
	}

	respondWithResult(w, http.StatusOK, resultRegister, h.logger)
}

// Login handles POST /login. On success the identity token is set as a cookie.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		h.logger.Info("Auth handler: malformed login form", "error", err.Error())
		respondWithResult(w, http.StatusBadRequest, resultLogin, h.logger)
		return
	}

	token, err := h.service.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		respondWithResult(w, statusFromError(err), resultLogin, h.logger)
		return
	}

	identity.SetCookie(w, token, h.secureCookie)
	respondWithResult(w, http.StatusOK, resultLogin, h.logger)
}

// Logout handles GET /logout. The cookie is cleared even if revocation fails.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), identity.TokenFromRequest(r)); err != nil {
		h.logger.Error("Auth handler: logout failed", "error", err.Error())
	}

	identity.ClearCookie(w, h.secureCookie)
	http.Redirect(w, r, "/", http.StatusFound)
}

// parseForm accepts both urlencoded and multipart bodies.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxFormMemory)
	}
	return r.ParseForm()
}

func parseAge(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/dtroode/gophboard-server/internal/logger"
	"github.com/dtroode/gophboard-server/internal/model"
)

type Auth struct {
	userStore model.UserStore
	hasher    model.PasswordHasher
	sessions  *Sessions
	logger    *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	sessions *Sessions,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		sessions:  sessions,
		logger:    logger,
	}
}

// Register creates a user. It does not log the user in.
func (a *Auth) Register(ctx context.Context, params model.RegisterParams) (model.User, error) {
	params.Email = normalizeEmail(params.Email)
	params.Name = strings.TrimSpace(params.Name)
	params.Hobby = strings.TrimSpace(params.Hobby)

	a.logger.Debug("Auth service: starting user registration",
		"email", params.Email)

	if err := validateRegistration(params); err != nil {
		a.logger.Info("Auth service: registration rejected",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, err
	}

	hash, err := a.hasher.Hash(params.Password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := a.userStore.Create(ctx, model.NewUser{
		Name:         params.Name,
		Hobby:        params.Hobby,
		Age:          params.Age,
		Email:        params.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			a.logger.Info("Auth service: email already taken",
				"email", params.Email)
			return model.User{}, err
		}
		a.logger.Error("Auth service: failed to create user",
			"email", params.Email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"user_id", user.ID)

	return user, nil
}

// Login checks credentials and issues an identity token.
// Unknown email and wrong password both yield ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, email, password string) (model.IdentityToken, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return model.IdentityToken{}, model.ErrInvalidCredentials
	}

	creds, err := a.userStore.GetCredentialsByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("Auth service: login for unknown email",
				"email", email)
			return model.IdentityToken{}, model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get credentials",
			"email", email,
			"error", err.Error())
		return model.IdentityToken{}, fmt.Errorf("failed to get credentials: %w", err)
	}

	if !a.hasher.Verify(password, creds.PasswordHash) {
		a.logger.Info("Auth service: wrong password",
			"user_id", creds.UserID)
		return model.IdentityToken{}, model.ErrInvalidCredentials
	}

	token, err := a.sessions.Issue(ctx, creds.UserID)
	if err != nil {
		a.logger.Error("Auth service: failed to issue identity token",
			"user_id", creds.UserID,
			"error", err.Error())
		return model.IdentityToken{}, fmt.Errorf("failed to issue identity token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"user_id", creds.UserID)

	return token, nil
}

// Logout revokes the session behind token. Logging out without a session succeeds.
func (a *Auth) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}

	if err := a.sessions.Revoke(ctx, token); err != nil {
		a.logger.Error("Auth service: failed to revoke session",
			"error", err.Error())
		return err
	}

	return nil
}

// CurrentUser resolves token to a user. Any failure resolves to anonymous.
func (a *Auth) CurrentUser(ctx context.Context, token string) (model.User, bool) {
	if token == "" {
		return model.User{}, false
	}

	user, err := a.sessions.Resolve(ctx, token)
	if err != nil {
		a.logger.Debug("Auth service: treating request as anonymous",
			"error", err.Error())
		return model.User{}, false
	}

	return user, true
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRegistration(params model.RegisterParams) error {
	switch {
	case params.Name == "":
		return fmt.Errorf("name is required: %w", model.ErrInvalidInput)
	case params.Password == "":
		return fmt.Errorf("password is required: %w", model.ErrInvalidInput)
	case len(params.Password) > model.MaxPasswordBytes:
		return fmt.Errorf("password is longer than %d bytes: %w", model.MaxPasswordBytes, model.ErrInvalidInput)
	case params.Age < 0:
		return fmt.Errorf("age must not be negative: %w", model.ErrInvalidInput)
	}

	if addr, err := mail.ParseAddress(params.Email); err != nil || addr.Address != params.Email {
		return fmt.Errorf("email %q is malformed: %w", params.Email, model.ErrInvalidInput)
	}

	return nil
}

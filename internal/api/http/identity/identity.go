// Package identity carries the identity token between the client and the server.
package identity

import (
	"net/http"
	"strings"
	"time"

	"github.com/dtroode/gophboard-server/internal/model"
)

// CookieName is the cookie holding the identity token.
const CookieName = "login_token"

const bearerPrefix = "Bearer "

// TokenFromRequest returns the identity token from the cookie, or from an
// Authorization bearer header when no cookie is present.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if len(header) > len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}

	return ""
}

// SetCookie hands token to the client. The cookie is not readable by scripts.
func SetCookie(w http.ResponseWriter, token model.IdentityToken, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token.Value,
		Path:     "/",
		Expires:  token.ExpiresAt,
		MaxAge:   int(time.Until(token.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie tells the client to discard its identity token.
func ClearCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/gophboard-server/internal/model"
)

// Claims represents JWT claims carrying the user ID.
type Claims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"user_id"`
	TokenType string `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey, ttl: model.IdentityTTL, now: time.Now}
}

var _ model.TokenManager = (*JWT)(nil)

const typeIdentity = "identity"

// Generate creates an identity token for userID valid for the identity TTL.
func (j *JWT) Generate(userID int64) (model.IdentityToken, error) {
	now := j.now()
	expiresAt := now.Add(j.ttl)
	jti := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    userID,
		TokenType: typeIdentity,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return model.IdentityToken{}, fmt.Errorf("failed to sign identity token: %w", err)
	}

	return model.IdentityToken{
		Value:     tokenString,
		JTI:       jti,
		IssuedAt:  now,
		ExpiresAt: expiresAt,
	}, nil
}

// Parse validates an identity token and extracts the user ID and token ID.
func (j *JWT) Parse(tokenString string) (int64, string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	}, jwt.WithTimeFunc(j.now))
	if err != nil {
		return 0, "", fmt.Errorf("failed to parse identity token: %w", err)
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("identity token is invalid")
	}
	if claims.TokenType != typeIdentity {
		return 0, "", fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	if claims.UserID <= 0 || claims.ID == "" {
		return 0, "", fmt.Errorf("identity token has no subject")
	}
	return claims.UserID, claims.ID, nil
}

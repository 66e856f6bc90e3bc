package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/gophboard-server/internal/model"
)

func TestJWT_Roundtrip(t *testing.T) {
	j := NewJWT("secret")

	tok, err := j.Generate(42)
	require.NoError(t, err)
	require.NotEmpty(t, tok.Value)
	require.NotEmpty(t, tok.JTI)

	userID, jti, err := j.Parse(tok.Value)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, tok.JTI, jti)
}

func TestJWT_SevenDayValidity(t *testing.T) {
	j := NewJWT("secret")

	tok, err := j.Generate(1)
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, tok.ExpiresAt.Sub(tok.IssuedAt))
	assert.Equal(t, model.IdentityTTL, tok.ExpiresAt.Sub(tok.IssuedAt))
}

func TestJWT_UniqueTokenIDs(t *testing.T) {
	j := NewJWT("secret")

	a, err := j.Generate(1)
	require.NoError(t, err)
	b, err := j.Generate(1)
	require.NoError(t, err)
	assert.NotEqual(t, a.JTI, b.JTI)
}

func TestJWT_Expired(t *testing.T) {
	issued := time.Now().Add(-8 * 24 * time.Hour)
	j := &JWT{secretKey: "secret", ttl: model.IdentityTTL, now: func() time.Time { return issued }}

	tok, err := j.Generate(1)
	require.NoError(t, err)

	j.now = time.Now
	_, _, err = j.Parse(tok.Value)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestJWT_WrongSecret(t *testing.T) {
	tok, err := NewJWT("secret").Generate(1)
	require.NoError(t, err)

	_, _, err = NewJWT("other").Parse(tok.Value)
	require.Error(t, err)
}

func TestJWT_Garbage(t *testing.T) {
	_, _, err := NewJWT("secret").Parse("not-a-token")
	require.Error(t, err)
}

func TestJWT_TypeMismatch(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID:    1,
		TokenType: "refresh",
	})
	s, err := token.SignedString([]byte("secret"))
	require.NoError(t, err)

	_, _, err = NewJWT("secret").Parse(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token type mismatch")
}

func TestJWT_WrongSigningMethod(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{ID: "jti"},
		UserID:           1,
		TokenType:        typeIdentity,
	})
	s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, _, err = NewJWT("secret").Parse(s)
	require.Error(t, err)
}

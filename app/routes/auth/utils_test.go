package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/models"
)

func TestPasswordHash(t *testing.T) {
	HashCost = bcrypt.MinCost
	hash, err := HashPassword("correct-horse")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("correct-horse", hash))
	assert.False(t, CheckPasswordHash("battery-staple", hash))
}

func TestTokens(t *testing.T) {
	tokens := NewTokens(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Issuer: "unipath"})
	user := &models.User{ID: 7, Username: "registrar"}

	signed, expires, err := tokens.Generate(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "registrar", claims.Username)
	assert.NotEmpty(t, claims.ID)

	other := NewTokens(config.AuthConfig{JWTSecret: "other", TokenTTL: time.Hour, Issuer: "unipath"})
	_, err = other.Validate(signed)
	assert.Error(t, err, "a different secret must not validate")

	foreign := NewTokens(config.AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour, Issuer: "someone-else"})
	_, err = foreign.Validate(signed)
	assert.Error(t, err, "issuer is checked")

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 7, "iss": "unipath"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = tokens.Validate(none)
	assert.Error(t, err, "unsigned tokens are rejected")
}

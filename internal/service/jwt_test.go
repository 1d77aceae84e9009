package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42)
	require.NoError(t, err)

	userID, err := ParseJWT(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWTInvalidToken(t *testing.T) {
	InitJWT("test-secret")

	_, err := ParseJWT("not-a-token")
	assert.Error(t, err)

	_, err = ParseJWT("")
	assert.Error(t, err)
}

func TestJWTExpiredRejected(t *testing.T) {
	InitJWT("test-secret")

	claims := jwt.MapClaims{
		"user_id": int64(42),
		"exp":     time.Now().Add(-time.Minute).Unix(),
		"iat":     time.Now().Add(-2 * time.Hour).Unix(),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = ParseJWT(expired)
	assert.Error(t, err)
}

func TestAdminJWT(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateAdminJWT()
	require.NoError(t, err)

	require.NoError(t, ParseAdminJWT(token))

	// user tokens are not admin tokens
	userToken, err := GenerateJWT(42)
	require.NoError(t, err)
	assert.Error(t, ParseAdminJWT(userToken))

	// admin tokens carry no user identity
	_, err = ParseJWT(token)
	assert.Error(t, err)
}

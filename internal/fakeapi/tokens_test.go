package fakeapi

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/achievo/internal/common"
)

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	tok, err := GenerateToken(123, secret, time.Hour, time.Now())
	require.NoError(t, err)

	id, err := UserIDFromToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, int64(123), id)
}

func TestUserIDFromToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(1, secret, -time.Minute, time.Now())
	require.NoError(t, err)

	_, err = UserIDFromToken(tok, secret)
	require.Error(t, err)
	assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
}

func TestUserIDFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(2, []byte("right-secret"), time.Hour, time.Now())
	require.NoError(t, err)

	_, err = UserIDFromToken(tok, []byte("wrong-secret"))
	assert.Error(t, err)
}

func TestUserIDFromToken_NonNumericSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("s")
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = UserIDFromToken(tok, secret)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestUserIDFromToken_Garbage(t *testing.T) {
	t.Parallel()

	_, err := UserIDFromToken("not-a-token", []byte("s"))
	assert.Error(t, err)
}

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewSessionToken(t *testing.T) {
	a, err := NewSessionToken()
	require.NoError(t, err)
	b, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, a, 96)
	assert.NotEqual(t, a, b)
}

func TestHashToken(t *testing.T) {
	h := HashToken("hello")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashToken("hello"))
	assert.NotEqual(t, h, HashToken("hello2"))
}

func TestVerificationTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	raw, exp, err := NewVerificationToken(secret, "cust-123", time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	id, err := ParseVerificationToken(secret, raw)
	require.NoError(t, err)
	assert.Equal(t, "cust-123", id)
}

func TestVerificationTokenWrongSecret(t *testing.T) {
	raw, _, err := NewVerificationToken("secret-a", "cust-123", time.Hour)
	require.NoError(t, err)

	_, err = ParseVerificationToken("secret-b", raw)
	assert.ErrorIs(t, err, ErrBadVerifyToken)
}

func TestVerificationTokenExpired(t *testing.T) {
	raw, _, err := NewVerificationToken("secret", "cust-123", -time.Minute)
	require.NoError(t, err)

	_, err = ParseVerificationToken("secret", raw)
	assert.ErrorIs(t, err, ErrBadVerifyToken)
}

func TestVerificationTokenGarbage(t *testing.T) {
	_, err := ParseVerificationToken("secret", "not.a.jwt")
	assert.ErrorIs(t, err, ErrBadVerifyToken)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong"))
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour, "matchmakr")

	t.Run("Should round trip a user id", func(t *testing.T) {
		token, exp, err := svc.Issue(42)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		userID, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("Should reject a token signed with another secret", func(t *testing.T) {
		other := NewTokenService("other-secret", time.Hour, "matchmakr")
		token, _, err := other.Issue(42)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Should report expired tokens", func(t *testing.T) {
		past := NewTokenService("test-secret", time.Minute, "matchmakr")
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := past.Issue(42)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("Should reject other signing methods", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = svc.Verify(token)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Should refuse to issue without a secret", func(t *testing.T) {
		_, _, err := NewTokenService("", time.Hour, "").Issue(1)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

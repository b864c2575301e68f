package auth

import (
	"testing"
	"time"

	"github.com/lshigami/placement-portal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T, secret string) *TokenManager {
	t.Helper()
	cfg := &config.Config{}
	cfg.Auth.JWTSecret = secret
	cfg.Auth.TokenTTL = time.Hour
	m, err := NewTokenManager(cfg)
	require.NoError(t, err)
	return m
}

func TestTokenManager(t *testing.T) {
	t.Run("round trip keeps user and role", func(t *testing.T) {
		m := newManager(t, "secret")
		token, exp, err := m.Generate(42, "admin")
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

		claims, err := m.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), claims.UserID)
		assert.Equal(t, "admin", claims.Role)
	})

	t.Run("other secret is rejected", func(t *testing.T) {
		token, _, err := newManager(t, "one").Generate(1, "student")
		require.NoError(t, err)
		_, err = newManager(t, "two").Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		m := newManager(t, "secret")
		m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, _, err := m.Generate(1, "student")
		require.NoError(t, err)

		m.now = time.Now
		_, err = m.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := newManager(t, "secret").Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing secret fails construction", func(t *testing.T) {
		_, err := NewTokenManager(&config.Config{})
		assert.Error(t, err)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}

package auth

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, duration time.Duration) *TokenService {
	t.Helper()
	key := make([]byte, keyLength)
	_, err := rand.Read(key)
	require.NoError(t, err)

	svc, err := NewTokenService(key, duration)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService_RejectsBadKey(t *testing.T) {
	_, err := NewTokenService([]byte("too short"), time.Hour)
	assert.Error(t, err)

	_, err = NewTokenService(make([]byte, 64), time.Hour)
	assert.Error(t, err)
}

func TestGenerateAndVerifyAccessToken(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	token, err := svc.GenerateAccessToken("user-alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", claims.UserID)
	assert.Equal(t, "user-alice", claims.Subject)
	assert.Equal(t, "brewlog-server", claims.Issuer)
	assert.Equal(t, "brewlog-client", claims.Audience)
	assert.NotEmpty(t, claims.TokenID)
	assert.True(t, claims.Expiration.After(time.Now()))
}

func TestVerifyAccessToken_Expired(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute)

	token, err := svc.GenerateAccessToken("user-alice")
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_WrongKey(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)
	other := newTestTokenService(t, time.Hour)

	token, err := svc.GenerateAccessToken("user-alice")
	require.NoError(t, err)

	_, err = other.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyAccessToken_Garbage(t *testing.T) {
	svc := newTestTokenService(t, time.Hour)

	for _, input := range []string{"", "not-a-token", "v4.local.garbage"} {
		_, err := svc.VerifyAccessToken(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestLoadOrGenerateKey_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, key1, keyLength)

	// Second call loads the same key.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}

package service

import (
	"crypto/rand"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brewlogapp/brewlog-server/internal/auth"
	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	svc, err := auth.NewTokenService(key, time.Hour)
	require.NoError(t, err)
	return svc
}

func TestResolveUser_ValidToken(t *testing.T) {
	tokens := newTestTokenService(t)
	svc := NewAuthService(tokens, false, "user-guest", testLogger())

	token, err := tokens.GenerateAccessToken("user-alice")
	require.NoError(t, err)

	userID, err := svc.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", userID)
}

func TestResolveUser_GuestFallback(t *testing.T) {
	tokens := newTestTokenService(t)
	svc := NewAuthService(tokens, false, "user-guest", testLogger())

	// No token.
	userID, err := svc.ResolveUser("")
	require.NoError(t, err)
	assert.Equal(t, "user-guest", userID)

	// Garbage token resolves the same as no token.
	userID, err = svc.ResolveUser("v4.local.garbage")
	require.NoError(t, err)
	assert.Equal(t, "user-guest", userID)
}

func TestResolveUser_Required(t *testing.T) {
	tokens := newTestTokenService(t)
	svc := NewAuthService(tokens, true, "user-guest", testLogger())

	_, err := svc.ResolveUser("")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	_, err = svc.ResolveUser("not-a-token")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

	// A valid token still works.
	token, err := tokens.GenerateAccessToken("user-alice")
	require.NoError(t, err)
	userID, err := svc.ResolveUser(token)
	require.NoError(t, err)
	assert.Equal(t, "user-alice", userID)
}

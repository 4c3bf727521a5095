// Package service contains the application services between the HTTP layer
// and the store.
package service

import (
	"log/slog"

	"github.com/brewlogapp/brewlog-server/internal/auth"
	apperrors "github.com/brewlogapp/brewlog-server/internal/errors"
)

// TokenVerifier verifies bearer tokens. Implemented by auth.TokenService.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.AccessClaims, error)
}

// AuthService resolves each request to a user identity.
//
// Requests without a usable token fall back to the shared guest identity
// unless auth is required, in which case they are rejected.
type AuthService struct {
	verifier    TokenVerifier
	required    bool
	guestUserID string
	logger      *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(verifier TokenVerifier, required bool, guestUserID string, logger *slog.Logger) *AuthService {
	return &AuthService{
		verifier:    verifier,
		required:    required,
		guestUserID: guestUserID,
		logger:      logger,
	}
}

// ResolveUser maps a bearer token (possibly empty) to a user id.
// Invalid tokens count the same as absent ones: guest fallback, never a
// partial identity.
func (s *AuthService) ResolveUser(token string) (string, error) {
	if token != "" {
		claims, err := s.verifier.VerifyAccessToken(token)
		if err == nil && claims.UserID != "" {
			return claims.UserID, nil
		}
		s.logger.Debug("token rejected", "error", err)
	}

	if s.required {
		return "", apperrors.Unauthorized("a valid access token is required")
	}
	return s.guestUserID, nil
}

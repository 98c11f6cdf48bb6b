// Package auth provides the identity token contract shared by all services:
// issuing and verifying signed bearer tokens, and the middleware that gates
// protected routes. Every service must be configured with the identical
// signing secret or cross-service verification fails.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/grocery-assistant/backend/internal/errors"
)

// TokenTTL is the fixed lifetime of issued tokens.
const TokenTTL = 24 * time.Hour

// Claims is the token payload. The subject is the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed identity tokens. The secret is
// resolved once at startup and treated as read-only thereafter.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a token service for the given signing secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue creates a signed token for the given user ID, expiring in 24 hours.
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Internal("Failed to issue token", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning the user ID it was issued
// for. Malformed, expired, and badly signed tokens all fail the same way.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthenticated("Invalid or expired token")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthenticated("Invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Subject == "" {
		return "", errors.Unauthenticated("Invalid token claims")
	}
	return claims.Subject, nil
}

package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocery-assistant/backend/internal/errors"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret")

	token, err := svc.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a").Issue("user-123")
	require.NoError(t, err)

	_, err = NewTokenService("secret-b").Verify(token)
	assert.True(t, errors.IsKind(err, errors.KindUnauthenticated))
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := NewTokenService("test-secret")
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.Verify(tok)
		assert.Error(t, err, "token %q", tok)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-48 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret").Verify(token)
	assert.True(t, errors.IsKind(err, errors.KindUnauthenticated))
}

func TestVerifyRejectsUnsignedToken(t *testing.T) {
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret").Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsMissingSubject(t *testing.T) {
	secret := []byte("test-secret")
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = NewTokenService("test-secret").Verify(token)
	assert.Error(t, err)
}

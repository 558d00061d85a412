package token

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testService() *Service {
	return NewService(Config{
		Secret:             "access-secret",
		RefreshSecret:      "refresh-secret",
		ExpiryMinutes:      15,
		RefreshExpiryHours: 168,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	signed, err := svc.GenerateAccessToken(userID, "doc@example.com", "doctor")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "doc@example.com", claims.Email)
	assert.Equal(t, "doctor", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestRefreshTokenNotValidAsAccess(t *testing.T) {
	svc := testService()

	refresh, err := svc.GenerateRefreshToken(uuid.New(), "pat@example.com", "patient")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "patient", claims.Role)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc := NewService(Config{Secret: "s", ExpiryMinutes: -1})

	signed, err := svc.GenerateAccessToken(uuid.New(), "a@example.com", "patient")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(signed)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	svc := testService()
	_, err := svc.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}

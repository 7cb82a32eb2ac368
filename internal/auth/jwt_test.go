package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classpage/announcements-backend/internal/auth"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute)

	token, err := m.GenerateAccessToken("user-123", "teacher@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ParseAndValidate(token)
	require.NoError(t, err)

	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "teacher@example.com", claims.Email)
	assert.Equal(t, "user-123", claims.Subject)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := auth.NewJWTManager("secret-a", 15*time.Minute)
	other := auth.NewJWTManager("secret-b", 15*time.Minute)

	token, err := m.GenerateAccessToken("user-123", "teacher@example.com")
	require.NoError(t, err)

	_, err = other.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := auth.NewJWTManager("test-secret", -time.Minute)

	token, err := m.GenerateAccessToken("user-123", "teacher@example.com")
	require.NoError(t, err)

	_, err = m.ParseAndValidate(token)
	assert.Error(t, err)
}

func TestJWTManager_GarbageToken(t *testing.T) {
	m := auth.NewJWTManager("test-secret", 15*time.Minute)

	_, err := m.ParseAndValidate("not.a.token")
	assert.Error(t, err)
}

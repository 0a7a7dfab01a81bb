package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	token, err := GenerateJWT(42, "testuser")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, username, err := validateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, userID)
	assert.Equal(t, "testuser", username)
}

func TestValidateGarbageToken(t *testing.T) {
	_, _, err := validateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestBlacklistedTokenRejected(t *testing.T) {
	token, err := GenerateJWT(7, "blacklisted")
	require.NoError(t, err)

	BlacklistToken(token, time.Now().Add(time.Hour))
	assert.True(t, IsTokenBlacklisted(token))

	_, _, err = validateToken(token)
	assert.Error(t, err)
}

func TestExtractTokenFromBearerHeader(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	assert.Equal(t, "abc123", ExtractToken(r))
}

func TestExtractTokenFromCookie(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: "cookietoken"})

	assert.Equal(t, "cookietoken", ExtractToken(r))
}

func TestExtractTokenMissing(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	assert.Equal(t, "", ExtractToken(r))
}

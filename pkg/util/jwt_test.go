package util

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	token, err := GenerateJWT(42, "reviewer@example.com", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, email, err := ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.Equal(t, "reviewer@example.com", email)
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT(1, "reviewer@example.com", "secret-a")
	require.NoError(t, err)

	_, _, err = ParseJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestParseJWTGarbage(t *testing.T) {
	_, _, err := ParseJWT("not-a-token", "test-secret")
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	r, _ := http.NewRequest("GET", "/review/pending", nil)
	assert.Equal(t, "", ExtractToken(r))

	r.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", ExtractToken(r))
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", hash)

	assert.True(t, CheckPassword("hunter22", hash))
	assert.False(t, CheckPassword("hunter23", hash))
}

package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndValidateToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(userID, "a@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	userCtx, err := ValidateToken("Bearer "+token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, userCtx.ID)
	assert.Equal(t, "a@example.com", userCtx.Email)
	assert.NotEmpty(t, userCtx.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), userCtx.ExpiresAt, 5*time.Second)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	userID := uuid.New()
	a, err := GenerateToken(userID, "a@example.com", testSecret, time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken(userID, "a@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	ca, err := ValidateToken(a, testSecret)
	require.NoError(t, err)
	cb, err := ValidateToken(b, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, ca.TokenID, cb.TokenID)
}

func TestValidateTokenFailures(t *testing.T) {
	expired, err := GenerateToken(uuid.New(), "a@example.com", testSecret, -time.Minute)
	require.NoError(t, err)
	valid, err := GenerateToken(uuid.New(), "a@example.com", testSecret, time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		secret string
		want   error
	}{
		{"missing", "", testSecret, ErrMissingToken},
		{"garbage", "not-a-jwt", testSecret, ErrInvalidToken},
		{"wrong secret", valid, "other-secret", ErrInvalidToken},
		{"expired", expired, testSecret, ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.token, tt.secret)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc", ExtractTokenFromHeader("Bearer abc"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader("Bearer"))
	assert.Empty(t, ExtractTokenFromHeader(""))
}

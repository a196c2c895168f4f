package helpers

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateTokenPair(t *testing.T) {
	userID := uuid.New()

	pair, err := GenerateTokenPair(userID, testSecret)
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)
	assert.NotEqual(t, pair.Access, pair.Refresh)
}

func TestParseAccessToken(t *testing.T) {
	userID := uuid.New()
	pair, err := GenerateTokenPair(userID, testSecret)
	require.NoError(t, err)

	claims, err := ParseToken(pair.Access, TokenTypeAccess, testSecret)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestParseRefreshTokenCarriesJTI(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), testSecret)
	require.NoError(t, err)

	claims, err := ParseToken(pair.Refresh, TokenTypeRefresh, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, claims.JTI)
	assert.False(t, claims.ExpiresAt.IsZero())
}

func TestParseTokenRejectsWrongType(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = ParseToken(pair.Access, TokenTypeRefresh, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken(pair.Refresh, TokenTypeAccess, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	pair, err := GenerateTokenPair(uuid.New(), testSecret)
	require.NoError(t, err)

	_, err = ParseToken(pair.Access, TokenTypeAccess, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", TokenTypeAccess, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

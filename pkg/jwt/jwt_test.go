package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewManager("secret", "ourhour", time.Hour, 24*time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "ADMIN")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestRefreshTokenCarriesJTI(t *testing.T) {
	m := NewManager("secret", "ourhour", time.Hour, 24*time.Hour)

	token, issued, err := m.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, claims.ID)
	assert.Equal(t, TokenTypeRefresh, claims.TokenType)
}

func TestValidateRejectsForeignTokens(t *testing.T) {
	m := NewManager("secret", "ourhour", time.Hour, time.Hour)
	other := NewManager("other-secret", "ourhour", time.Hour, time.Hour)
	wrongIssuer := NewManager("secret", "someone-else", time.Hour, time.Hour)

	token, err := other.GenerateAccessToken(uuid.New(), "USER")
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.Error(t, err)

	token, err = wrongIssuer.GenerateAccessToken(uuid.New(), "USER")
	require.NoError(t, err)
	_, err = m.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	m := NewManager("secret", "ourhour", -time.Minute, time.Hour)
	token, err := m.GenerateAccessToken(uuid.New(), "USER")
	require.NoError(t, err)

	_, err = m.Validate(token)
	assert.Error(t, err)
}

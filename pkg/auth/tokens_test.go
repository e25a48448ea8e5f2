package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.MintAccessToken("507f1f77bcf86cd799439011", "alice", "alice@example.com")
	require.NoError(t, err)

	claims, err := m.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	m := newTestManager()

	token, err := m.MintRefreshToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	claims, err := m.VerifyRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "507f1f77bcf86cd799439011", claims.UserID)
	// The refresh token carries only the user id
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Email)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	m := newTestManager()

	access, err := m.MintAccessToken("507f1f77bcf86cd799439011", "alice", "alice@example.com")
	require.NoError(t, err)
	refresh, err := m.MintRefreshToken("507f1f77bcf86cd799439011")
	require.NoError(t, err)

	_, err = m.VerifyRefreshToken(access)
	assert.Error(t, err)

	_, err = m.VerifyAccessToken(refresh)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbageAndExpired(t *testing.T) {
	m := newTestManager()

	_, err := m.VerifyAccessToken("not-a-jwt")
	assert.Error(t, err)

	expired := NewTokenManager("access-secret", "refresh-secret", -time.Minute, -time.Minute)
	token, err := expired.MintAccessToken("507f1f77bcf86cd799439011", "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewTokenManager("different-secret", "refresh-secret", time.Minute, time.Hour)

	token, err := other.MintAccessToken("507f1f77bcf86cd799439011", "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = m.VerifyAccessToken(token)
	assert.Error(t, err)
}

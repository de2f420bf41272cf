package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *HMACService {
	s := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	s.now = func() time.Time { return now }
	return s
}

func TestHMACService_AccessTokenRoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(now)
	id := uuid.New()

	tok, err := s.GenerateAccessToken(id, "a@b.co")
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, id, c.LearnerID)
	assert.Equal(t, "a@b.co", c.Email)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
	assert.False(t, s.IsRefreshToken(c))
}

func TestHMACService_RefreshToken(t *testing.T) {
	s := newTestService(time.Now())
	tok, err := s.GenerateRefreshToken(uuid.New())
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.True(t, s.IsRefreshToken(c))
}

func TestHMACService_Expired(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := newTestService(issued)
	tok, err := s.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(time.Hour) }
	_, err = s.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestHMACService_ForeignSecret(t *testing.T) {
	other := NewHMACService("x", "y", time.Minute, time.Minute)
	tok, err := other.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = newTestService(time.Now()).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestHMACService_MissingSecret(t *testing.T) {
	s := NewHMACService("", "", time.Minute, time.Minute)
	_, err := s.GenerateAccessToken(uuid.New(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarycatalog/internal/apperror"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()
	s, err := NewService("test-secret", "HS256", ttl)
	require.NoError(t, err)
	return s
}

func TestNewServiceRejectsUnknownAlgorithm(t *testing.T) {
	_, err := NewService("test-secret", "ROT13", time.Minute)
	assert.Error(t, err)
}

func TestHashPasswordIsSalted(t *testing.T) {
	s := newTestService(t, time.Minute)

	first, err := s.HashPassword("pw1")
	require.NoError(t, err)
	second, err := s.HashPassword("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, s.VerifyPassword("pw1", first))
	assert.True(t, s.VerifyPassword("pw1", second))
}

func TestVerifyPasswordRejectsWrongPassword(t *testing.T) {
	s := newTestService(t, time.Minute)

	hash, err := s.HashPassword("pw1")
	require.NoError(t, err)

	assert.False(t, s.VerifyPassword("pw2", hash))
	assert.False(t, s.VerifyPassword("", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	s := newTestService(t, 30*time.Minute)

	token, err := s.CreateToken("alice")
	require.NoError(t, err)

	subject, err := s.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	s := newTestService(t, -time.Minute)

	token, err := s.CreateToken("alice")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))
}

func TestMissingOrMalformedTokenIsRejected(t *testing.T) {
	s := newTestService(t, time.Minute)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		_, err := s.ValidateToken(token)
		assert.True(t, errors.Is(err, apperror.ErrUnauthenticated), "token %q", token)
	}
}

func TestMisSignedTokenIsRejected(t *testing.T) {
	s := newTestService(t, time.Minute)
	other, err := NewService("other-secret", "HS256", time.Minute)
	require.NoError(t, err)

	token, err := other.CreateToken("alice")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))
}

func TestWrongSigningMethodIsRejected(t *testing.T) {
	s := newTestService(t, time.Minute)
	hs512, err := NewService("test-secret", "HS512", time.Minute)
	require.NoError(t, err)

	token, err := hs512.CreateToken("alice")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.True(t, errors.Is(err, apperror.ErrUnauthenticated))
}

func TestTokenWithoutSubjectIsNotFound(t *testing.T) {
	s := newTestService(t, time.Minute)

	token, err := s.CreateToken("")
	require.NoError(t, err)

	_, err = s.ValidateToken(token)
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

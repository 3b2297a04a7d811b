package token

import (
	"context"
	"testing"
	"time"

	"animals-api/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestNew_RejectsShortSecret(t *testing.T) {
	_, err := New(Config{Secret: "short"})
	assert.ErrorIs(t, err, ErrSecretTooShort)
}

func TestIssueAndVerify(t *testing.T) {
	s, err := New(Config{Secret: testSecret, TTL: time.Minute})
	require.NoError(t, err)

	tok, exp, err := s.Issue(context.Background(), auth.Claims{Username: "alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), exp, 5*time.Second)

	c, err := s.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, auth.Claims{Username: "alice", Email: "alice@example.com"}, c)
}

func TestVerify_Expired(t *testing.T) {
	s, err := New(Config{Secret: testSecret, TTL: time.Minute})
	require.NoError(t, err)

	issuedAt := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issuedAt }
	tok, _, err := s.Issue(context.Background(), auth.Claims{Username: "alice"})
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_WrongSecret(t *testing.T) {
	a, err := New(Config{Secret: testSecret})
	require.NoError(t, err)
	b, err := New(Config{Secret: "ffffffffffffffffffffffffffffffff"})
	require.NoError(t, err)

	tok, _, err := a.Issue(context.Background(), auth.Claims{Username: "alice"})
	require.NoError(t, err)

	_, err = b.Verify(context.Background(), tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Garbage(t *testing.T) {
	s, err := New(Config{Secret: testSecret})
	require.NoError(t, err)

	for _, tok := range []string{"", "abc", "a.b.c"} {
		_, err := s.Verify(context.Background(), tok)
		assert.ErrorIs(t, err, ErrInvalidToken, tok)
	}
}

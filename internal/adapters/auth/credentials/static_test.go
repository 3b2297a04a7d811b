package credentials

import (
	"context"
	"testing"

	"animals-api/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestParseAndCheck(t *testing.T) {
	s, err := Parse([]string{"alice:" + hashOf(t, "s3cret"), "  "})
	require.NoError(t, err)

	c, err := s.Check(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Username)

	_, err = s.Check(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = s.Check(context.Background(), "bob", "s3cret")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestParse_Invalid(t *testing.T) {
	for _, entry := range []string{"alice", "alice:", ":hash", "alice:not-bcrypt"} {
		_, err := Parse([]string{entry})
		assert.Error(t, err, entry)
	}
}

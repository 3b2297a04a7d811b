package credentials

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"animals-api/internal/ports/auth"

	"golang.org/x/crypto/bcrypt"
)

// Static valida contra usuarios fijos (username -> hash bcrypt), típicamente desde config.
type Static struct {
	hashes map[string][]byte

	dummyOnce sync.Once
	dummy     []byte
}

var _ auth.CredentialChecker = (*Static)(nil)

// Parse lee entradas "username:bcrypt-hash".
func Parse(entries []string) (*Static, error) {
	hashes := make(map[string][]byte, len(entries))
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		user, hash, ok := strings.Cut(e, ":")
		user = strings.TrimSpace(user)
		hash = strings.TrimSpace(hash)
		if !ok || user == "" || hash == "" {
			return nil, fmt.Errorf("invalid user entry %q: want username:bcrypt-hash", user)
		}
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("invalid bcrypt hash for %q: %w", user, err)
		}
		hashes[user] = []byte(hash)
	}
	return &Static{hashes: hashes}, nil
}

func (s *Static) Check(ctx context.Context, username, password string) (auth.Claims, error) {
	username = strings.TrimSpace(username)
	hash, ok := s.hashes[username]
	if !ok {
		// compara igual para no revelar qué usuarios existen por tiempo de respuesta
		_ = bcrypt.CompareHashAndPassword(s.dummyHash(), []byte(password))
		return auth.Claims{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return auth.Claims{}, auth.ErrInvalidCredentials
	}
	return auth.Claims{Username: username}, nil
}

func (s *Static) dummyHash() []byte {
	s.dummyOnce.Do(func() {
		s.dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	})
	return s.dummy
}

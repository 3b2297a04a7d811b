package memory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"animals-api/internal/ports/auth"
)

type sessionStore struct {
	mu   sync.RWMutex
	byID map[string]auth.Session
	now  func() time.Time
}

func NewSessionStore() auth.SessionStore {
	return &sessionStore{
		byID: make(map[string]auth.Session),
		now:  time.Now,
	}
}

func (s *sessionStore) Put(ctx context.Context, sess auth.Session) error {
	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[sess.ID] = sess
	return nil
}

// Get trata una sesión vencida como inexistente y la limpia.
func (s *sessionStore) Get(ctx context.Context, id string) (auth.Session, error) {
	s.mu.RLock()
	sess, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	if !sess.ExpiresAt.IsZero() && !s.now().Before(sess.ExpiresAt) {
		s.mu.Lock()
		delete(s.byID, id)
		s.mu.Unlock()
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, id)
	return nil
}

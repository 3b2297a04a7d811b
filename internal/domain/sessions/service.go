package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animals-api/internal/ports/auth"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = auth.ErrInvalidCredentials
)

const defaultTTL = 24 * time.Hour

type Service struct {
	creds    auth.CredentialChecker
	sessions auth.SessionStore
	tokens   auth.TokenIssuer // puede ser nil: login sin token

	ttl   time.Duration
	now   func() time.Time
	newID func() string
}

type Options struct {
	Credentials auth.CredentialChecker
	Sessions    auth.SessionStore
	Tokens      auth.TokenIssuer
	TTL         time.Duration
}

func NewService(opts Options) *Service {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{
		creds:    opts.Credentials,
		sessions: opts.Sessions,
		tokens:   opts.Tokens,
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Login es el resultado de un login exitoso.
type Login struct {
	Session        auth.Session
	Token          string
	TokenExpiresAt time.Time
}

func (s *Service) Login(ctx context.Context, username, password string) (Login, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Login{}, ErrInvalidCredentials
	}

	claims, err := s.creds.Check(ctx, username, password)
	if err != nil {
		return Login{}, err
	}

	sess := auth.Session{
		ID:        s.newID(),
		Claims:    claims,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if err := s.sessions.Put(ctx, sess); err != nil {
		return Login{}, fmt.Errorf("store session: %w", err)
	}

	out := Login{Session: sess}
	if s.tokens != nil {
		tok, exp, err := s.tokens.Issue(ctx, claims)
		if err != nil {
			_ = s.sessions.Delete(ctx, sess.ID)
			return Login{}, fmt.Errorf("issue token: %w", err)
		}
		out.Token = tok
		out.TokenExpiresAt = exp
	}
	return out, nil
}

// Logout es idempotente: una sesión inexistente no es error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil && !errors.Is(err, auth.ErrSessionNotFound) {
		return err
	}
	return nil
}

// Package redis guarda las sesiones de login en Redis, con TTL nativo.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"animals-api/internal/ports/auth"

	goredis "github.com/redis/go-redis/v9"
)

const defaultPrefix = "animals:session:"

type Config struct {
	Addr     string
	Password string
	DB       int

	// Prefix de las keys; default "animals:session:".
	Prefix string
}

type SessionStore struct {
	client goredis.Cmdable
	prefix string
	now    func() time.Time
}

var _ auth.SessionStore = (*SessionStore)(nil)

type storedSession struct {
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewClient crea el cliente y verifica la conexión con PING.
func NewClient(ctx context.Context, cfg Config) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("redis addr is required")
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:       addr,
		Password:   cfg.Password,
		DB:         cfg.DB,
		MaxRetries: 2,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func NewSessionStore(client goredis.Cmdable, prefix string) *SessionStore {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultPrefix
	}
	return &SessionStore{client: client, prefix: prefix, now: time.Now}
}

func (s *SessionStore) Put(ctx context.Context, sess auth.Session) error {
	if strings.TrimSpace(sess.ID) == "" {
		return errors.New("session id required")
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return errors.New("session already expired")
	}

	payload, err := json.Marshal(storedSession{
		Username:  sess.Claims.Username,
		Email:     sess.Claims.Email,
		ExpiresAt: sess.ExpiresAt.UTC(),
	})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sess.ID), payload, ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, id string) (auth.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return auth.Session{}, auth.ErrSessionNotFound
		}
		return auth.Session{}, err
	}

	var st storedSession
	if err := json.Unmarshal(raw, &st); err != nil {
		return auth.Session{}, fmt.Errorf("decode session: %w", err)
	}

	return auth.Session{
		ID:        id,
		Claims:    auth.Claims{Username: st.Username, Email: st.Email},
		ExpiresAt: st.ExpiresAt,
	}, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return s.prefix + id
}

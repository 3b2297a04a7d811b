package token

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"animals-api/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrSecretTooShort = errors.New("jwt secret must be at least 32 characters")
)

const defaultTTL = time.Hour

type Config struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// Service emite y verifica tokens HS256. Implementa auth.AuthVerifier y auth.TokenIssuer.
type Service struct {
	key    []byte
	ttl    time.Duration
	issuer string
	leeway time.Duration
	now    func() time.Time
}

var (
	_ auth.AuthVerifier = (*Service)(nil)
	_ auth.TokenIssuer  = (*Service)(nil)
)

type tokenClaims struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func New(cfg Config) (*Service, error) {
	if len(cfg.Secret) < 32 {
		return nil, ErrSecretTooShort
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = "animals-api"
	}

	return &Service{
		key:    []byte(cfg.Secret),
		ttl:    ttl,
		issuer: issuer,
		leeway: 30 * time.Second,
		now:    time.Now,
	}, nil
}

func (s *Service) Issue(ctx context.Context, c auth.Claims) (string, time.Time, error) {
	username := strings.TrimSpace(c.Username)
	if username == "" {
		return "", time.Time{}, errors.New("username required")
	}

	now := s.now()
	exp := now.Add(s.ttl)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		Username: username,
		Email:    c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	})

	signed, err := tok.SignedString(s.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (s *Service) Verify(ctx context.Context, tokenString string) (auth.Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return auth.Claims{}, ErrExpiredToken
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	c, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid || strings.TrimSpace(c.Username) == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	return auth.Claims{Username: c.Username, Email: c.Email}, nil
}

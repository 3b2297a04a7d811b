package auth

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens que luego acepta un AuthVerifier.
type TokenIssuer interface {
	Issue(ctx context.Context, claims Claims) (token string, expiresAt time.Time, err error)
}

// SessionStore guarda sesiones por id. Get devuelve ErrSessionNotFound si no existe o expiró.
type SessionStore interface {
	Put(ctx context.Context, s Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// CredentialChecker valida usuario/contraseña. Devuelve ErrInvalidCredentials si no coinciden.
type CredentialChecker interface {
	Check(ctx context.Context, username, password string) (Claims, error)
}

package middleware

import (
	"context"
	"net/http"
	"strings"

	"animals-api/internal/platform/logger"
	"animals-api/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

const (
	// SessionCookie guarda el id de sesión emitido por /auth/login.
	SessionCookie = "animals_session"

	// DebugUserHeader solo se acepta en modo dev.
	DebugUserHeader = "X-Debug-User"
)

type AuthOptions struct {
	Verifier auth.AuthVerifier // puede ser nil
	Sessions auth.SessionStore // puede ser nil
	DevMode  bool
	Logger   logger.Logger
}

// AuthContext resuelve la identidad del caller, en este orden:
// - Bearer token => Verifier.Verify()
// - cookie de sesión => Sessions.Get()
// - modo dev: header X-Debug-User
// Si no hay claims, el request sigue igual; los handlers deciden si exigen auth.
func AuthContext(opts AuthOptions) func(http.Handler) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolve(r, opts, log); ok {
				next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func resolve(r *http.Request, opts AuthOptions, log logger.Logger) (auth.Claims, bool) {
	ctx := r.Context()

	if opts.Verifier != nil {
		if token := bearerToken(r.Header.Get("Authorization")); token != "" {
			claims, err := opts.Verifier.Verify(ctx, token)
			if err == nil {
				return claims, true
			}
			// No cortamos aquí. El handler decide 401.
			log.Debug("bearer token rejected", map[string]any{"error": err})
		}
	}

	if opts.Sessions != nil {
		if id := SessionID(r); id != "" {
			s, err := opts.Sessions.Get(ctx, id)
			if err == nil {
				return s.Claims, true
			}
			log.Debug("session lookup failed", map[string]any{"error": err})
		}
	}

	if opts.DevMode {
		if user := strings.TrimSpace(r.Header.Get(DebugUserHeader)); user != "" {
			return auth.Claims{Username: user}, true
		}
	}

	return auth.Claims{}, false
}

func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	v := ctx.Value(claimsKey)
	if v == nil {
		return auth.Claims{}, false
	}
	c, ok := v.(auth.Claims)
	return c, ok
}

// SessionID devuelve el valor de la cookie de sesión, o "".
func SessionID(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(c.Value)
}

func bearerToken(authHeader string) string {
	if strings.TrimSpace(authHeader) == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"animals-api/internal/errs"
	"animals-api/internal/platform/logger"
	"animals-api/internal/ports/auth"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	token  string
	claims auth.Claims
}

func (v stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token != v.token {
		return auth.Claims{}, errors.New("bad token")
	}
	return v.claims, nil
}

type stubSessions map[string]auth.Session

func (s stubSessions) Put(_ context.Context, sess auth.Session) error { s[sess.ID] = sess; return nil }
func (s stubSessions) Delete(_ context.Context, id string) error       { delete(s, id); return nil }
func (s stubSessions) Get(_ context.Context, id string) (auth.Session, error) {
	sess, ok := s[id]
	if !ok {
		return auth.Session{}, auth.ErrSessionNotFound
	}
	return sess, nil
}

func whoami(w http.ResponseWriter, r *http.Request) {
	c, ok := GetClaims(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	_, _ = w.Write([]byte(c.Username))
}

func TestAuthContextResolution(t *testing.T) {
	opts := AuthOptions{
		Verifier: stubVerifier{token: "good", claims: auth.Claims{Username: "from-token"}},
		Sessions: stubSessions{"s1": {ID: "s1", Claims: auth.Claims{Username: "from-session"}, ExpiresAt: time.Now().Add(time.Hour)}},
	}

	cases := []struct {
		name    string
		dev     bool
		prepare func(r *http.Request)
		want    string
	}{
		{"anonymous", false, func(*http.Request) {}, ""},
		{"bearer", false, func(r *http.Request) { r.Header.Set("Authorization", "Bearer good") }, "from-token"},
		{"bad bearer falls back to session", false, func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer nope")
			r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "s1"})
		}, "from-session"},
		{"unknown session", false, func(r *http.Request) { r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "zz"}) }, ""},
		{"debug header ignored outside dev", false, func(r *http.Request) { r.Header.Set(DebugUserHeader, "dev") }, ""},
		{"debug header in dev", true, func(r *http.Request) { r.Header.Set(DebugUserHeader, " dev ") }, "dev"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := opts
			o.DevMode = tc.dev
			h := AuthContext(o)(http.HandlerFunc(whoami))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.prepare(req)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if tc.want == "" {
				assert.Equal(t, http.StatusNoContent, rec.Code)
				return
			}
			assert.Equal(t, tc.want, rec.Body.String())
		})
	}
}

func TestCORS(t *testing.T) {
	h := CORS([]string{"http://localhost:8080", "https://app.example.com/"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("allow-listed origin is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/animals", nil)
		req.Header.Set("Origin", "https://app.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("unknown origin gets the first trusted one", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/animals", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:8080", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/animals", nil)
		req.Header.Set("Origin", "http://localhost:8080")
		req.Header.Set("Access-Control-Request-Method", "POST")
		req.Header.Set("Access-Control-Request-Headers", "content-type")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "content-type", rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("default origin", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CORS(nil)(http.NotFoundHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, DefaultOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRecoverRespondsWith500(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Format: logger.FormatJSON, Output: &buf})

	h := Recover(log, errs.NewResponder(log))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal Server Error")
	assert.NotContains(t, rec.Body.String(), "boom")
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRequestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	h := chimw.RequestID(RequestID(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/animals/1", nil))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.EqualValues(t, 404, entry["status"])
	assert.Equal(t, "/animals/1", entry["path"])
	assert.NotEmpty(t, entry["request_id"])
	assert.Equal(t, entry["request_id"], rec.Header().Get(chimw.RequestIDHeader))
}

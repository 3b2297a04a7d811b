package sessions

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"animals-api/internal/errs"
	"animals-api/internal/middleware"
	"animals-api/internal/platform/logger"
	"animals-api/internal/validation"

	"github.com/go-chi/chi/v5"
)

type Deps struct {
	Responder    *errs.Responder
	Logger       logger.Logger
	CookieSecure bool
}

type loginInput struct {
	Username *string `json:"username" validate:"required,min=1"`
	Password *string `json:"password" validate:"required,min=1"`
}

var loginSchema = validation.Schema[loginInput]{Name: "login"}

type loginResponse struct {
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
	Username  string    `json:"username"`
}

type meResponse struct {
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

func RegisterRoutes(r chi.Router, svc *Service, deps Deps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	rs := deps.Responder
	if rs == nil {
		rs = errs.NewResponder(log)
	}

	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/login", login(svc, rs, log, deps.CookieSecure))
		ar.Post("/logout", logout(svc, rs, deps.CookieSecure))
		ar.Get("/me", me(rs))
	})
}

// login godoc
// @Summary Iniciar sesión
// @Description Crea una sesión (cookie animals_session) y devuelve un JWT.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginInput true "username y password"
// @Success 200 {object} loginResponse
// @Failure 401 {string} string "Unauthorized"
// @Failure 422 {object} object "errors.body con los problemas por campo"
// @Router /auth/login [post]
func login(svc *Service, rs *errs.Responder, log logger.Logger, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mt == "application/json" {
			b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<16))
			if err != nil {
				rs.Respond(w, r, errs.BadRequest("invalid body"))
				return
			}
			body = b
		}
		if len(body) > 0 && !json.Valid(body) {
			rs.Respond(w, r, errs.BadRequest("invalid json"))
			return
		}
		in, fieldErrs := loginSchema.Validate(body)
		if fieldErrs != nil {
			rs.Respond(w, r, errs.Unprocessable(fieldErrs))
			return
		}

		res, err := svc.Login(r.Context(), *in.Username, *in.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				log.Info("login rejected", map[string]any{"username": *in.Username})
				rs.Respond(w, r, errs.Unauthorized())
				return
			}
			rs.Respond(w, r, errs.Internal(err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    res.Session.ID,
			Path:     "/",
			Expires:  res.Session.ExpiresAt,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})

		out := loginResponse{
			Token:     res.Token,
			ExpiresAt: res.Session.ExpiresAt,
			Username:  res.Session.Claims.Username,
		}
		if res.Token != "" {
			out.ExpiresAt = res.TokenExpiresAt.UTC()
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// logout godoc
// @Summary Cerrar sesión
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func logout(svc *Service, rs *errs.Responder, secure bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middleware.SessionID(r)); err != nil {
			rs.Respond(w, r, errs.Internal(err))
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   secure,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}

// me godoc
// @Summary Identidad actual
// @Tags auth
// @Produce json
// @Success 200 {object} meResponse
// @Failure 401 {string} string "Unauthorized"
// @Router /auth/me [get]
func me(rs *errs.Responder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			rs.Respond(w, r, errs.Unauthorized())
			return
		}
		writeJSON(w, http.StatusOK, meResponse{Username: claims.Username, Email: claims.Email})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

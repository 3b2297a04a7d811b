package animals

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strconv"

	"animals-api/internal/errs"
	"animals-api/internal/middleware"
	"animals-api/internal/ports/auth"
	"animals-api/internal/upload"
	"animals-api/internal/validation"

	"github.com/go-chi/chi/v5"
)

const maxJSONBody = 1 << 20

var (
	animalSchema = validation.Schema[AnimalInput]{Name: "animal"}

	digits = regexp.MustCompile(`^[0-9]+$`)

	// errUnmatchedRoute manda el request al fallback genérico del router ("Cannot METHOD path"),
	// no al 404 propio del controller.
	errUnmatchedRoute = errors.New("route not matched")
)

// Call es el contexto tipado que recorre las etapas de una operación.
// Cada etapa devuelve una copia modificada; nada se cuelga del *http.Request.
type Call struct {
	W http.ResponseWriter
	R *http.Request

	ID     int64
	Claims *auth.Claims
	Input  AnimalInput
	Photo  *upload.File
}

// Stage corta el pipeline devolviendo error; el error lo renderiza el Error Responder.
type Stage struct {
	Name string
	Run  func(c Call) (Call, error)
}

// parseID: el segmento {id} tiene que ser solo dígitos y caber en int64.
func parseID() Stage {
	return Stage{Name: "parse-id", Run: func(c Call) (Call, error) {
		raw := chi.URLParam(c.R, "id")
		if !digits.MatchString(raw) {
			return c, errUnmatchedRoute
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c, errUnmatchedRoute
		}
		c.ID = id
		return c, nil
	}}
}

// requireAuth es el gate: sin identidad no se valida, no se sube nada y no se toca persistencia.
func requireAuth() Stage {
	return Stage{Name: "require-auth", Run: func(c Call) (Call, error) {
		claims, ok := middleware.GetClaims(c.R.Context())
		if !ok {
			return c, errs.Unauthorized()
		}
		c.Claims = &claims
		return c, nil
	}}
}

// validateBody solo parsea bodies application/json; cualquier otro Content-Type
// se valida como {}.
func validateBody() Stage {
	return Stage{Name: "validate-body", Run: func(c Call) (Call, error) {
		if !isJSON(c.R) {
			in, fieldErrs := animalSchema.Validate(nil)
			if fieldErrs != nil {
				return c, errs.Unprocessable(fieldErrs)
			}
			c.Input = in
			return c, nil
		}

		body, err := io.ReadAll(http.MaxBytesReader(c.W, c.R.Body, maxJSONBody))
		if err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return c, errs.TooLarge("Request body too large.")
			}
			return c, errs.BadRequest("invalid body")
		}
		if len(body) > 0 && !json.Valid(body) {
			return c, errs.BadRequest("invalid json")
		}

		in, fieldErrs := animalSchema.Validate(body)
		if fieldErrs != nil {
			return c, errs.Unprocessable(fieldErrs)
		}
		c.Input = in
		return c, nil
	}}
}

func interceptPhoto(in *upload.Interceptor) Stage {
	return Stage{Name: "intercept-photo", Run: func(c Call) (Call, error) {
		f, err := in.Intercept(c.W, c.R)
		switch {
		case err == nil:
			c.Photo = &f
			return c, nil
		case errors.Is(err, upload.ErrNoFile):
			return c, errs.BadRequest("No photo file uploaded.")
		case errors.Is(err, upload.ErrUnsupportedType):
			// un tipo inválido se trata como error inesperado (500), con mensaje propio
			return c, &errs.Error{
				Status:  http.StatusInternalServerError,
				Message: "Error: " + upload.UnsupportedTypeMessage,
				Cause:   err,
			}
		case errors.Is(err, upload.ErrTooLarge):
			return c, errs.TooLarge("File too large.")
		default:
			return c, errs.Internal(err)
		}
	}}
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// run ejecuta las etapas en orden y después la acción final.
func (h *handler) run(op string, stages []Stage, action func(c Call) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := Call{W: w, R: r}
		for _, st := range stages {
			next, err := st.Run(c)
			if err != nil {
				h.fail(w, r, op, st.Name, err)
				return
			}
			c = next
		}
		if err := action(c); err != nil {
			h.fail(w, r, op, "action", err)
		}
	}
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, op, stage string, err error) {
	h.log.Debug("animals pipeline stopped", map[string]any{
		"op":    op,
		"stage": stage,
		"error": err,
	})
	if errors.Is(err, errUnmatchedRoute) {
		h.errs.Fallback(w, r)
		return
	}
	h.errs.Respond(w, r, err)
}

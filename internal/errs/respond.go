package errs

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"animals-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Error</title>
</head>
<body>
<pre>%s</pre>
</body>
</html>
`

type validationBody struct {
	Errors struct {
		Body []FieldError `json:"body"`
	} `json:"errors"`
}

// Responder es el handler terminal de errores.
type Responder struct {
	log logger.Logger
}

func NewResponder(log logger.Logger) *Responder {
	if log == nil {
		log = logger.Nop()
	}
	return &Responder{log: log}
}

// Respond escribe err como respuesta. Si el handler ya escribió headers
// (WrapResponseWriter de chi), no vuelve a escribir: la respuesta se cierra una sola vez.
func (rs *Responder) Respond(w http.ResponseWriter, r *http.Request, err error) {
	if ww, ok := w.(chimw.WrapResponseWriter); ok && ww.Status() != 0 {
		rs.log.Warn("response already written, dropping error", map[string]any{
			"path":  r.URL.Path,
			"error": err,
		})
		return
	}

	var e *Error
	if !errors.As(err, &e) {
		e = Internal(err)
	}

	fields := map[string]any{
		"request_id": chimw.GetReqID(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
		"status":     e.Status,
	}
	if e.Cause != nil {
		fields["error"] = e.Cause
	}
	if e.Status >= http.StatusInternalServerError {
		rs.log.Error(e.Message, fields)
	} else {
		rs.log.Debug(e.Message, fields)
	}

	if e.Status == http.StatusUnprocessableEntity && e.Fields != nil {
		var body validationBody
		body.Errors.Body = e.Fields
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(e.Status)
		_ = json.NewEncoder(w).Encode(body)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(e.Status)
	_, _ = fmt.Fprintf(w, pageTemplate, html.EscapeString(e.Message))
}

// Fallback es el handler de ruta no encontrada: "Cannot METHOD path".
func (rs *Responder) Fallback(w http.ResponseWriter, r *http.Request) {
	rs.Respond(w, r, NotFound(r.Method, r.URL.Path))
}

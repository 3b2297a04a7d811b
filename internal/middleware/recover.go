package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"animals-api/internal/errs"
	"animals-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger de la app
// y responde 500 a través del Error Responder.
func Recover(log logger.Logger, rs *errs.Responder) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	if rs == nil {
		rs = errs.NewResponder(log)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})
				rs.Respond(w, r, errs.Internal(fmt.Errorf("panic: %v", rec)))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

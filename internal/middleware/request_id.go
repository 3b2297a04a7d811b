package middleware

import (
	"net/http"
	"time"

	"animals-api/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestID expone el id que generó chimw.RequestID en el header de respuesta.
// Tiene que ir después de chimw.RequestID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestLogger loguea una línea por request. 5xx => error, 4xx => warn.
// El ResponseWriter queda envuelto en chimw.WrapResponseWriter para que el
// Error Responder sepa si ya se escribió la respuesta.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				fields := map[string]any{
					"request_id":  chimw.GetReqID(r.Context()),
					"method":      r.Method,
					"path":        r.URL.Path,
					"status":      status,
					"bytes":       ww.BytesWritten(),
					"duration_ms": time.Since(start).Milliseconds(),
					"remote":      r.RemoteAddr,
				}
				switch {
				case status >= http.StatusInternalServerError:
					log.Error("request", fields)
				case status >= http.StatusBadRequest:
					log.Warn("request", fields)
				default:
					log.Info("request", fields)
				}
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

package router

import (
	"database/sql"
	"net/http"
	"time"

	_ "animals-api/docs"
	"animals-api/internal/adapters/auth/credentials"
	"animals-api/internal/adapters/storage/files"
	mem "animals-api/internal/adapters/storage/memory"
	pg "animals-api/internal/adapters/storage/postgres"
	"animals-api/internal/domain/animals"
	"animals-api/internal/domain/sessions"
	"animals-api/internal/errs"
	"animals-api/internal/middleware"
	"animals-api/internal/platform/logger"
	"animals-api/internal/ports/auth"
	"animals-api/internal/upload"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultMaxUploadBytes = 5 << 20

type Options struct {
	Logger logger.Logger

	AuthVerifier auth.AuthVerifier // puede ser nil
	Tokens       auth.TokenIssuer  // puede ser nil: login sin token
	Credentials  auth.CredentialChecker
	Sessions     auth.SessionStore // nil => in-memory
	SessionTTL   time.Duration
	DevMode      bool              // acepta X-Debug-User
	CookieSecure bool

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Photos guarda y sirve las fotos; nil => sin rutas de fotos.
	Photos         *files.DiskStore
	MaxUploadBytes int64

	CORSOrigins []string
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rs := errs.NewResponder(log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log, rs))
	r.Use(middleware.CORS(opts.CORSOrigins))

	sessionStore := opts.Sessions
	if sessionStore == nil {
		sessionStore = mem.NewSessionStore()
	}

	r.Use(middleware.AuthContext(middleware.AuthOptions{
		Verifier: opts.AuthVerifier,
		Sessions: sessionStore,
		DevMode:  opts.DevMode,
		Logger:   log,
	}))

	r.NotFound(rs.Fallback)
	r.MethodNotAllowed(rs.Fallback)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var animalRepo animals.Repository
	if opts.DB != nil {
		animalRepo = pg.NewAnimalsRepo(opts.DB)
	} else {
		animalRepo = mem.NewAnimalRepo()
	}

	deps := animals.Deps{Responder: rs, Logger: log}
	if opts.Photos != nil {
		maxBytes := opts.MaxUploadBytes
		if maxBytes <= 0 {
			maxBytes = defaultMaxUploadBytes
		}
		deps.Uploads = upload.NewPhotoInterceptor(opts.Photos, maxBytes)
		deps.Photos = opts.Photos.Handler(func(r *http.Request) string {
			return chi.URLParam(r, "filename")
		}, rs.Fallback)
	} else {
		log.Warn("no photo store configured, photo routes disabled", nil)
	}

	creds := opts.Credentials
	if creds == nil {
		creds, _ = credentials.Parse(nil)
	}

	// Services por módulo
	animalsSvc := animals.NewService(animalRepo)
	sessionsSvc := sessions.NewService(sessions.Options{
		Credentials: creds,
		Sessions:    sessionStore,
		Tokens:      opts.Tokens,
		TTL:         opts.SessionTTL,
	})

	// Rutas por módulo
	animals.RegisterRoutes(r, animalsSvc, deps)
	sessions.RegisterRoutes(r, sessionsSvc, sessions.Deps{
		Responder:    rs,
		Logger:       log,
		CookieSecure: opts.CookieSecure,
	})

	return r
}

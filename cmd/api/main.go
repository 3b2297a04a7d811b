package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"animals-api/internal/adapters/auth/credentials"
	"animals-api/internal/adapters/auth/identity"
	"animals-api/internal/adapters/auth/token"
	"animals-api/internal/adapters/storage/files"
	pg "animals-api/internal/adapters/storage/postgres"
	rds "animals-api/internal/adapters/storage/redis"
	"animals-api/internal/config"
	"animals-api/internal/platform/logger"
	"animals-api/internal/ports/auth"
	"animals-api/internal/router"

	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"error": err})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"error": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:         log,
		DevMode:        cfg.Auth.DevMode,
		CookieSecure:   cfg.Auth.CookieSecure,
		SessionTTL:     config.Seconds(cfg.Auth.SessionTTL),
		MaxUploadBytes: cfg.Uploads.MaxBytes,
		CORSOrigins:    cfg.Server.Origins(),
	}

	// Postgres si hay DSN; si no, in-memory (modo dev)
	if cfg.Database.DSN != "" {
		db, err := pg.Open(ctx, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer closeDB(db, log)

		if cfg.Database.AutoMigrate {
			if err := pg.Migrate(ctx, db, log); err != nil {
				return err
			}
		}
		opts.DB = db
	} else {
		log.Warn("no database dsn, using in-memory repository", nil)
	}

	if cfg.Redis.Addr != "" {
		client, err := rds.NewClient(ctx, rds.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer client.Close()
		opts.Sessions = rds.NewSessionStore(client, "")
	}

	photos, err := files.NewDiskStore(cfg.Uploads.Dir)
	if err != nil {
		return err
	}
	opts.Photos = photos

	creds, err := credentials.Parse(cfg.Auth.UserEntries())
	if err != nil {
		return err
	}
	opts.Credentials = creds

	var verifiers []auth.AuthVerifier
	if cfg.Auth.IdentityURL != "" {
		v, err := identity.NewVerifier(identity.Config{
			BaseURL: cfg.Auth.IdentityURL,
			APIKey:  cfg.Auth.IdentityAPIKey,
			Timeout: 5 * time.Second,
		})
		if err != nil {
			return err
		}
		verifiers = append(verifiers, v)
	}
	if cfg.Auth.JWTSecret != "" {
		tokens, err := token.New(token.Config{
			Secret: cfg.Auth.JWTSecret,
			TTL:    config.Seconds(cfg.Auth.TokenTTL),
		})
		if err != nil {
			return err
		}
		opts.Tokens = tokens
		// los tokens propios se verifican localmente antes que el proveedor externo
		verifiers = append([]auth.AuthVerifier{tokens}, verifiers...)
	}
	if len(verifiers) > 0 {
		opts.AuthVerifier = firstOf(verifiers)
	}

	if cfg.Auth.DevMode {
		log.Warn("dev mode: X-Debug-User header is trusted", nil)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.NewRouter(opts),
		ReadTimeout:       config.Seconds(cfg.Server.ReadTimeout),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      config.Seconds(cfg.Server.WriteTimeout),
		IdleTimeout:       config.Seconds(cfg.Server.IdleTimeout),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.Seconds(cfg.Server.ShutdownTimeout))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// firstOf acepta el token si cualquiera de los verifiers lo acepta, en orden.
type firstOf []auth.AuthVerifier

func (f firstOf) Verify(ctx context.Context, tok string) (auth.Claims, error) {
	var errs []error
	for _, v := range f {
		c, err := v.Verify(ctx, tok)
		if err == nil {
			return c, nil
		}
		errs = append(errs, err)
	}
	return auth.Claims{}, errors.Join(errs...)
}

func closeDB(db *sql.DB, log logger.Logger) {
	if err := db.Close(); err != nil {
		log.Warn("close database", map[string]any{"error": err})
	}
}

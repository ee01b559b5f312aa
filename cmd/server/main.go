// Command server runs the EduPath portal backend: the reference-data API
// (college cutoffs, scholarships), chat history, user registration, and
// the Groq completion proxy.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/edupath/go-edupath-backend/internal/config"
	httpapi "github.com/edupath/go-edupath-backend/internal/http"
	"github.com/edupath/go-edupath-backend/internal/observability"
	"github.com/edupath/go-edupath-backend/internal/store"
	"github.com/edupath/go-edupath-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	// .env is optional; real deployments use the environment directly.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	ctx := context.Background()
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup")
	}
	defer func() {
		if err := shutdownOTel(context.Background()); err != nil {
			log.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("open store")
	}

	// Seed reference data before the facade is exposed to any request.
	if err := store.Bootstrap(ctx, st); err != nil {
		log.Fatal().Err(err).Msg("seed reference data")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, st, httpapi.NewCompletionClient(cfg.Groq), cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().
			Str("version", version).
			Str("port", cfg.Port).
			Str("storage", cfg.StorageBackend).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server run")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
}

// openStore selects the configured storage backend.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StorageBackend {
	case config.StorageSQLite:
		db, err := store.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := store.AutoMigrate(db); err != nil {
			return nil, err
		}
		return store.NewGormStore(db), nil
	default:
		return store.NewMemStore(), nil
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/justinas/alice"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/nkalugin/deckvault/config"
	"github.com/nkalugin/deckvault/internal/deckvault"
	"github.com/nkalugin/deckvault/internal/stores/models"
)

const (
	GracefulShutdownTimeout = 10 * time.Second
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		panic(err)
	}
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if strings.ToLower(cfg.LogLevel) == "debug" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if cfg.DBMigrationsPath != "" {
		m, err := migrate.New(cfg.DBMigrationsPath, cfg.DBConnUri)
		if err != nil {
			log.Fatal().Err(err).Msg("migrations-new")
		}
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migrations-up")
		}
		e1, e2 := m.Close()
		log.Err(e1).Msg("close-source")
		log.Err(e2).Msg("close-database")
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DBConnUri)
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
	defer dbPool.Close()
	queries := models.New(dbPool)

	vaultServer := deckvault.NewServer(cfg, dbPool, queries)

	mux := http.NewServeMux()
	addRoutes(mux, vaultServer)

	chain := alice.New(
		hlog.NewHandler(log.Logger),
		hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
			hlog.FromRequest(r).Info().
				Str("method", r.Method).
				Stringer("url", r.URL).
				Int("status", status).
				Int("size", size).
				Dur("duration", duration).
				Msg("request")
		}),
		hlog.RequestIDHandler("req_id", "Request-Id"),
		authMiddleware([]byte(cfg.SecretKey)),
	).Then(mux)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: chain,
	}
	idleConnsClosed := make(chan struct{})

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		ctx, cancel := context.WithTimeout(context.Background(), GracefulShutdownTimeout)

		if err := srv.Shutdown(ctx); err != nil {
			// Error from closing listeners, or context timeout:
			log.Error().Msgf("HTTP server Shutdown: %v", err)
		}
		cancel()
		close(idleConnsClosed)
	}()

	log.Info().Str("addr", cfg.ListenAddr).Msg("starting deckvault server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("")
	}
	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}

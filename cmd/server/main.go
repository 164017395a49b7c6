package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dukapos/internal/config"
	"dukapos/internal/printq"
	"dukapos/internal/router"
	"dukapos/internal/session"
	"dukapos/internal/storage"
	"dukapos/internal/upstream"
	"dukapos/internal/view"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	setupLogger(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		store storage.Store
		rdb   *redis.Client
	)
	switch cfg.StorageBackend {
	case "redis":
		rs, err := storage.NewRedisStore(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		store = rs
		rdb = rs.Client()
		log.Info().Msg("session storage: redis")
	default:
		store = storage.NewFileStore(cfg.SessionFile)
		log.Info().Str("path", cfg.SessionFile).Msg("session storage: file")
	}

	sess := session.New(store)
	client := upstream.NewClient(cfg.APIBaseURL, time.Duration(cfg.APITimeoutSeconds)*time.Second, sess)
	sess.AttachClient(client)

	// Restore a previous sign-in so a till reboot does not log the cashier out
	sess.Hydrate(ctx)

	if err := os.MkdirAll(cfg.ReceiptDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.ReceiptDir).Msg("failed to create receipt directory")
	}
	spooler := printq.NewSpooler(rdb, cfg.ReceiptDir)
	spooler.Start(ctx, cfg.PrintPoolSize)

	views := view.NewRegistry(client, cfg.BusinessName)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router.New(cfg, sess, client, views, spooler),
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("central_api", cfg.APIBaseURL).Msg("terminal gateway listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("bye")
}

func setupLogger(env string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/docbridge/docbridge/pkg/docbridge"
	"github.com/docbridge/docbridge/pkg/docbridge/api"
	"github.com/docbridge/docbridge/pkg/docbridge/config"
	"github.com/docbridge/docbridge/pkg/docbridge/fetch"
	"github.com/docbridge/docbridge/pkg/docbridge/storage"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to optional YAML config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, err := cfg.BuildGateway()
	if err != nil {
		// A misconfigured store degrades the service to local saves rather
		// than keeping editor sessions from starting at all.
		logger.Error("object store unavailable, falling back to local saves",
			slog.String("error", err.Error()))
		store = storage.Disabled()
	}

	if store.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := config.EnsureBucket(ctx, store); err != nil {
			logger.Error("bucket provisioning failed, store marked degraded",
				slog.String("bucket", cfg.S3.Bucket),
				slog.String("error", err.Error()))
			store = storage.Disabled()
		}
		cancel()
	}

	issuer := cfg.BuildIssuer()
	if !issuer.Enabled() {
		logger.Warn("JWT secret is the placeholder or too short, token issuance disabled")
	}

	builder := docbridge.NewBuilder(store, issuer, cfg.BuilderConfig(), logger)
	fetcher := fetch.New(&http.Client{Timeout: 2 * time.Minute}, logger)
	saver := docbridge.NewSaver(fetcher, store, cfg.Download.Dir, logger)
	callbacks := docbridge.NewCallbackHandler(saver, logger)

	handler := api.NewHandler(builder, callbacks, store,
		time.Duration(cfg.S3.PresignExpirySecs)*time.Second, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Mount("/", handler.Routes())

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info("docbridge starting",
			slog.String("addr", cfg.Addr()),
			slog.Bool("store_enabled", store.Enabled()),
			slog.Bool("tokens_enabled", issuer.Enabled()),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server exited")
}

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

	"go.uber.org/zap"

	"github.com/kailas-cloud/seekr/internal/app"
	"github.com/kailas-cloud/seekr/internal/config"
	logpkg "github.com/kailas-cloud/seekr/internal/logger"
	"github.com/kailas-cloud/seekr/internal/metrics"
	chiTransport "github.com/kailas-cloud/seekr/internal/transport/chi"
	gqlTransport "github.com/kailas-cloud/seekr/internal/transport/graphql"
	"github.com/kailas-cloud/seekr/internal/version"
)

func main() {
	// Optional .env before reading ENV
	if err := config.LoadDotEnv(os.Getenv("SEEKR_ENV_FILE")); err != nil {
		panic(err.Error())
	}
	if err := config.LoadDotEnv(".env"); err != nil {
		panic(err.Error())
	}

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting seekr API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_driver", cfg.Engine.Driver),
		zap.String("index", cfg.Engine.Index),
	)

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	ctx := context.Background()
	a, err := app.New(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error("Error closing connections", zap.Error(err))
		}
	}()

	if err := a.Schema.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure index", zap.String("index", cfg.Engine.Index), zap.Error(err))
	}
	logger.Info("Index ready", zap.String("index", cfg.Engine.Index))

	schema, err := gqlTransport.NewSchema(gqlTransport.Services{
		Documents:    a.Documents,
		Search:       a.Search,
		Interactions: a.Interactions,
		Health:       a.Health,
	})
	if err != nil {
		logger.Fatal("Failed to build GraphQL schema", zap.Error(err))
	}

	server := chiTransport.NewServer(a.Documents, a.Search, a.Health)
	handler := chiTransport.NewRouter(server, chiTransport.RouterConfig{
		APIKeys: cfg.Auth.APIKeys,
		GraphQL: gqlTransport.NewHandler(schema, env != "prod"),
		Logger:  logger,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

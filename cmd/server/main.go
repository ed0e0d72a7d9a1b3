package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeylanithiam/ResumeMash/internal/api"
	"github.com/jeylanithiam/ResumeMash/internal/config"
	"github.com/jeylanithiam/ResumeMash/internal/engine"
	"github.com/jeylanithiam/ResumeMash/internal/logger"
	"github.com/jeylanithiam/ResumeMash/internal/storage/postgres"
	"github.com/jeylanithiam/ResumeMash/internal/storage/redis"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("starting ResumeMash engine",
		zap.String("log_level", cfg.LogLevel),
		zap.Int("retrain_batch_size", cfg.RetrainBatchSize),
	)

	log.Info("connecting to PostgreSQL...")
	store, err := postgres.New(cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to PostgreSQL", zap.Error(err))
	}
	defer store.Close()

	migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), 30*time.Second)
	if err := store.Migrate(migrateCtx); err != nil {
		cancelMigrate()
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	cancelMigrate()

	log.Info("connecting to Redis...")
	cache, err := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, log)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer cache.Close()
	cache.SetSessionTTL(cfg.SessionTTL)

	eng := engine.New(store, store, cache, cfg.RetrainBatchSize, log)

	apiSrv := api.New(eng, store, cache, log)
	router := api.NewRouter(apiSrv, cache, log)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		sig := <-sigCh
		log.Info("received shutdown signal", zap.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	log.Info("API server listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server stopped with error", zap.Error(err))
	}

	<-idleConnsClosed
	log.Info("server stopped")
}

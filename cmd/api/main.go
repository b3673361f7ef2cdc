package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"example.com/footprint/internal/api"
	"example.com/footprint/internal/auth"
	"example.com/footprint/internal/config"
	"example.com/footprint/internal/session"
	httptransport "example.com/footprint/internal/transport/http"
	"example.com/footprint/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding})
	defer func() { _ = log.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := session.NewStore(
		session.WithTTL(cfg.SessionTTL),
		session.WithHashCost(cfg.PasswordHashCost),
		session.WithLogger(log.Named("session")),
	)
	sweeper := session.NewSweeper(store, cfg.SessionSweepInterval)
	go sweeper.Start(ctx)

	tokens := auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}
	handler := api.NewHandler(store, tokens, cfg.SessionTTL, log.Named("api"))

	server := httptransport.NewServer(httptransport.ServerConfig{
		Address:      cfg.HTTPAddress,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}, newHTTPHandler(handler, tokens, cfg.CORSOrigin, log.Named("http")))

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info("footprint listening", zap.String("address", cfg.HTTPAddress))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	<-shutdownCh
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}

	sweeper.Wait()
	log.Info("footprint stopped", zap.Int("discarded_sessions", store.Len()))
}

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/admin-console/internal/config"
	"github.com/spec-kit/admin-console/internal/observability"
	"github.com/spec-kit/admin-console/internal/stub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	server, err := stub.NewServer(cfg.Stub, logger)
	if err != nil {
		logger.Fatal("failed to build stub server", zap.Error(err))
	}

	go func() {
		logger.Info("stub api listening", zap.String("addr", cfg.Stub.Addr()))
		if err := server.Listen(cfg.Stub.Addr()); err != nil {
			logger.Fatal("stub api stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	if err := server.Shutdown(); err != nil {
		logger.Error("shutdown failed", zap.Error(err))
	}
}

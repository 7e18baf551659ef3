package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"registration_e2e/infrastructure/config"
	"registration_e2e/infrastructure/demosite"
	"registration_e2e/infrastructure/logging"
)

func main() {
	cfg := config.LoadDemoSite()
	logger := logging.NewLogger(cfg.LogLevel)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           demosite.NewServer(logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Infof("Registration form listening on %s", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Shutdown failed: %v", err)
		os.Exit(1)
	}
	logger.Info("Server stopped")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/naturalhealing/booking/internal/app"
	"github.com/naturalhealing/booking/internal/config"
	"github.com/naturalhealing/booking/internal/logger"
	"github.com/naturalhealing/booking/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log); err != nil {
		log.Error("Application error", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	envPath := getEnvOrDefault("ENV_FILE", ".env")
	cfg, err := config.LoadWithFile(envPath)
	if err != nil {
		log.Error("Failed to load config", logger.Error(err), logger.F("path", envPath))
		return err
	}

	featureCfg, err := service.LoadFeatureConfig(cfg.FeatureConfigPath)
	if err != nil {
		log.Error("Failed to load feature config", logger.Error(err), logger.F("path", cfg.FeatureConfigPath))
		return err
	}

	a := app.New(cfg, featureCfg, log)
	if err := a.Initialize(ctx); err != nil {
		return err
	}
	h, err := a.Handler()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, log)
}

// serve runs srv until ctx is cancelled, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server listening", logger.Action("startup"), logger.F("ADDR", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down", logger.Action("shutdown"))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("Server stopped", logger.Action("shutdown"), logger.Status("stopped"))
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

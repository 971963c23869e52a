// Command vehicle-mock serves a fixed set of vehicles under /vehicles so the
// pricing service can run locally without the real vehicle registry.
package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	mw "github.com/modig-dev/insurance/internal/api/middleware"
	"github.com/modig-dev/insurance/internal/config"
	"github.com/modig-dev/insurance/internal/vehicle"
	"go.uber.org/zap"
)

func main() {
	_ = config.Load()

	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := chi.NewRouter()
	r.Use(mw.RequestID)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Mount("/vehicles", vehicle.StubHandler(vehicle.NewMockClient().Vehicles))

	addr := config.VehicleMockAddr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("vehicle mock starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("vehicle mock failed", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("vehicle mock forced to shutdown", zap.Error(err))
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/osse101/Homestead_Go/internal/bootstrap"
	"github.com/osse101/Homestead_Go/internal/clock"
	"github.com/osse101/Homestead_Go/internal/config"
	"github.com/osse101/Homestead_Go/internal/logger"
	"github.com/osse101/Homestead_Go/internal/server"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatalf("Homestead failed: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	warnings, envErr := config.ValidateEnvWithWarnings()
	if envErr != nil {
		log.Printf("Environment check: %v", envErr)
	}

	logFile, err := bootstrap.SetupLogger(cfg, version)
	if err != nil {
		return err
	}
	defer logFile.Close()

	for _, w := range warnings {
		logger.Warn(w)
	}

	ctx := context.Background()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		return err
	}

	if err := bootstrap.SyncCatalog(ctx, repos.Catalog, cfg.CatalogPath); err != nil {
		repos.Pool.Close()
		return err
	}

	events, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		repos.Pool.Close()
		return err
	}

	services := bootstrap.InitializeServices(cfg, repos, events.Publisher, clock.NewReal())
	srv := server.NewServer(cfg.Port, cfg.TrustedProxies, repos.Pool, services.Farm, services.Catalog)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
	case runErr = <-serverErr:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:      srv,
		FarmService: services.Farm,
		Events:      events,
		Pool:        repos.Pool,
	})
	return runErr
}

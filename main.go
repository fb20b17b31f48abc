package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/server"
	"github.com/isina-nej/unipath/app/services"
)

func main() {
	configPath := flag.String("config", "", "path to the HCL configuration file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}

	logger, err := ctxlog.New(os.Stdout, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	ctx = ctxlog.WithLogger(ctx, logger)

	// Initialize database and apply the schema
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("database connected", "driver", cfg.Database.Driver)

	// Start background consistency sweep
	sweepDone := services.StartScheduler(ctx, store, cfg.Maintenance.SweepInterval)

	app := server.New(cfg, store, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server starting", "addr", cfg.Server.Addr())
	if err := app.Listen(cfg.Server.Addr()); err != nil {
		return err
	}
	<-sweepDone
	return nil
}

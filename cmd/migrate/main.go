package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
)

func main() {
	fs := flag.NewFlagSet("migrate", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the HCL configuration file")
	seed := fs.Bool("seed", false, "load the sample curriculum after migrating")
	fs.Parse(os.Args[1:])

	if err := run(context.Background(), *configPath, *seed); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, seed bool) error {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	logger, err := ctxlog.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	logger.Info("Starting migration...", "driver", cfg.Database.Driver)
	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if seed {
		logger.Info("Loading sample curriculum...")
		if err := database.SeedSample(ctx, store); err != nil {
			return err
		}
	}

	logger.Info("Migration completed successfully!")
	return nil
}

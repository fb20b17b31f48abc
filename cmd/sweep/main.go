// Command sweep runs the consistency sweep once and prints what it removed.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"

	"github.com/isina-nej/unipath/app/config"
	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/services"
)

func main() {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the HCL configuration file")
	fs.Parse(os.Args[1:])

	if err := run(context.Background(), *configPath); err != nil {
		slog.Error("sweep failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	logger, err := ctxlog.New(os.Stderr, cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	ctx = ctxlog.WithLogger(ctx, logger)

	store, err := cfg.OpenStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	result, err := services.RunConsistencySweep(ctx, store)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{"deleted": result, "total": result.Total()})
}

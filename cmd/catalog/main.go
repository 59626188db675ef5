package main

import (
	"context"
	"log/slog"
	"os"

	catalogapp "github.com/dwikikusuma/storefront/internal/catalog/app"
	catalogpg "github.com/dwikikusuma/storefront/internal/catalog/infra/postgres"
	"github.com/dwikikusuma/storefront/internal/catalog/infra/yamlfile"

	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/postgres"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
)

// catalog seeds the Postgres products table from CATALOG_FILE so the
// storefront can run with CATALOG_SOURCE=postgres.
func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Service: "catalog-seed", Env: cfg.AppEnv, Level: cfg.LogLevel})

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("seed failed", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	// Validate before touching the database.
	svc, err := catalogapp.NewService(ctx, yamlfile.NewFileSource(cfg.Catalog.File), cfg.Catalog.PageSize)
	if err != nil {
		return err
	}

	pc := cfg.Postgres
	db, err := postgres.Open(ctx, postgres.Config{Host: pc.Host, Port: pc.Port, User: pc.User, Pass: pc.Pass, DB: pc.DB}.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	repo, err := catalogpg.NewProductRepo(ctx, db)
	if err != nil {
		return err
	}

	products := svc.Products()
	if err := repo.Replace(ctx, products); err != nil {
		return err
	}

	log.Info("catalog seeded",
		slog.String("file", cfg.Catalog.File),
		slog.Int("products", len(products)),
		slog.Int("categories", len(svc.Categories())),
	)
	return nil
}

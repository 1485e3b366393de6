package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/beggab/storechina/internal/config"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/search"
	"github.com/beggab/storechina/pkg/db"
)

// Seeds the demo inventory and the initial exchange rate. Safe to run more
// than once: products upsert on their marketplace item id and the rate is
// only recorded when the series is empty.
func main() {
	rate := flag.Float64("rate", repo.FallbackExchangeRate, "initial CNY->RUB exchange rate")
	skipProducts := flag.Bool("skip-products", false, "do not seed demo products")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx := logging.IntoContext(context.Background(), logger)

	gdb, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := gdb.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	r := repo.New(gdb)

	if !*skipProducts {
		products := search.Inventory()
		if err := r.UpsertProducts(ctx, products); err != nil {
			logger.Error("product seed failed", "error", err)
			os.Exit(1)
		}
		logger.Info("products seeded", "count", len(products))
	}

	_, ok, err := r.LatestRate(ctx)
	if err != nil {
		logger.Error("rate lookup failed", "error", err)
		os.Exit(1)
	}
	if ok {
		logger.Info("exchange rate already present, skipping")
		return
	}
	if err := r.RecordRate(ctx, *rate, "seed"); err != nil {
		logger.Error("rate seed failed", "error", err)
		os.Exit(1)
	}
	logger.Info("exchange rate seeded", "rate", *rate)
}

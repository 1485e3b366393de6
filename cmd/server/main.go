package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beggab/storechina/internal/cache"
	"github.com/beggab/storechina/internal/config"
	"github.com/beggab/storechina/internal/es"
	"github.com/beggab/storechina/internal/events"
	"github.com/beggab/storechina/internal/httpserver"
	"github.com/beggab/storechina/internal/logging"
	"github.com/beggab/storechina/internal/models"
	"github.com/beggab/storechina/internal/repo"
	"github.com/beggab/storechina/internal/search"
	"github.com/beggab/storechina/pkg/db"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.AdminPasswordHash, "ADMIN_PASSWORD_HASH")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gdb, err := db.Open(ctx, cfg.DSN())
	if err != nil {
		logger.Error("database open failed", "error", err)
		os.Exit(1)
	}
	if err := gdb.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		logger.Info("kafka disabled, events will not be published")
	}

	var searchCache cache.Cache
	if cfg.RedisAddr != "" {
		searchCache = cache.NewRedisCache(cfg.RedisAddr, "storechina")
	}

	var provider search.Provider = &search.Mock{}
	if cfg.ES_URL != "" {
		client, err := es.NewClient(cfg)
		if err != nil {
			logger.Warn("elasticsearch unavailable, using demo inventory", "error", err)
		} else {
			provider = &search.Elastic{ES: client, Index: cfg.ES_INDEX}
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	httpserver.Register(e, httpserver.Deps{
		Logger:            logger,
		Repo:              repo.New(gdb),
		Producer:          producer,
		Cache:             searchCache,
		Search:            provider,
		AdminPasswordHash: cfg.AdminPasswordHash,
		JWTSecret:         cfg.JWTSecret,
	})

	// background sweep of expired search sessions
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		defer ticker.Stop()
		storeRepo := repo.New(gdb)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sweepCtx := logging.IntoContext(ctx, logger)
				if n, err := storeRepo.ExpireStaleSessions(sweepCtx); err != nil {
					logger.Warn("session sweep failed", "error", err)
				} else if n > 0 {
					logger.Info("sessions expired", "count", n)
				}
			}
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		logger.Info("server listening", "addr", addr)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	if err := producer.Close(); err != nil {
		logger.Error("kafka close failed", "error", err)
	}
	if sqlDB, err := gdb.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("database close failed", "error", err)
		}
	}
}

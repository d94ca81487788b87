package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poliexam/paperforge/internal/httpapi"
	"github.com/poliexam/paperforge/internal/platform/cache"
	"github.com/poliexam/paperforge/internal/platform/config"
	"github.com/poliexam/paperforge/internal/platform/database"
	"github.com/poliexam/paperforge/internal/registry"
	"github.com/poliexam/paperforge/internal/taxonomy"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	catalog, err := taxonomy.NewCatalog(cfg.TaxonomyPath)
	if err != nil {
		slog.Error("failed to load taxonomy catalog", "error", err)
		os.Exit(1)
	}

	// A missing database is not fatal: the registry falls back to the
	// seeded in-memory store so authoring keeps working.
	var pool *pgxpool.Pool
	db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
	if err != nil {
		slog.Warn("database unavailable", "error", err)
	} else {
		pool = db.Pool
		defer db.Close()
	}

	reg, err := registry.New(ctx, pool)
	if err != nil {
		slog.Error("failed to build registry", "error", err)
		os.Exit(1)
	}

	var qcache *cache.Cache
	if cfg.Cache.Enabled {
		qcache, err = cache.New(ctx, cfg.Cache.URL)
		if err != nil {
			slog.Warn("cache unavailable, question listings uncached", "error", err)
		} else {
			defer qcache.Close()
		}
	}

	api := httpapi.New(reg, qcache, catalog, time.Duration(cfg.Cache.TTL)*time.Second)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "fallback", reg.Fallback)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

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

	"github.com/spf13/cobra"

	"folio/internal/cache"
	"folio/internal/database"
	"folio/internal/handlers"
	"folio/internal/metrics"
	"folio/internal/middleware"
	"folio/internal/router"
	"folio/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the API server",
	Long: `Run the API server. Pending migrations are applied on start and the
development environment is seeded with the bundled dataset. Valkey is
optional: without it list responses are simply not cached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	var listCache *cache.ListCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(context.Background(), cache.ValkeyOptions{
			Host:     cfg.ValkeyHost,
			Port:     cfg.ValkeyPort,
			Password: cfg.ValkeyPassword,
		})
		if err != nil {
			slog.Warn("valkey unavailable, list caching disabled", "error", err)
		} else {
			defer valkeyClient.Close()
			listCache = cache.NewListCache(valkeyClient, cfg.CacheTTL)
		}
	} else {
		slog.Info("list caching disabled")
	}

	m := metrics.New()
	throttle := middleware.NewThrottle(cfg.VoteLimit, cfg.VoteWindow)
	defer throttle.Stop()
	throttle.OnReject = m.Throttled

	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set, review deletion disabled")
	}

	api := handlers.NewAPI(handlers.Deps{
		Blog:       store.NewBlogStore(db),
		Portfolio:  store.NewPortfolioStore(db),
		Reviews:    store.NewReviewStore(db),
		Services:   store.NewServiceStore(db),
		Likes:      store.NewLikeStore(db),
		Cache:      listCache,
		Metrics:    m,
		AdminToken: cfg.AdminToken,
	})

	r := router.New(api, router.Options{
		Metrics:     m,
		Throttle:    throttle,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	errCh := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		slog.Info("shutdown signal received", "signal", sig)
	}

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/AleutianAI/bintree/cmd/bintree/config"
	"github.com/AleutianAI/bintree/services/treequery"
	"github.com/AleutianAI/bintree/services/treequery/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve tree queries over HTTP",
		Long: `Serve tree queries over HTTP until SIGINT or SIGTERM.

On a signal the server reports not ready, stops accepting connections,
and gives in-flight requests server.shutdown_grace to finish.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if address != "" {
				cfg.Server.Address = address
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var watch *config.Watcher
			if a.cfgPath != "" {
				w, err := config.NewWatcher(a.cfgPath, a.applyReload)
				if err != nil {
					slog.Debug("Config reload disabled", "error", err)
				} else {
					watch = w
				}
			}

			lis, err := net.Listen("tcp", cfg.Server.Address)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", cfg.Server.Address, err)
			}
			return serve(ctx, cfg, lis, watch)
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "override server.address")
	return cmd
}

// serve runs the HTTP server on lis until ctx is done, then shuts it down
// gracefully. It owns lis.
//
// Description:
//
//	An errgroup runs the server, the shutdown watcher, and the config
//	watcher when watch is non-nil. A server failure cancels the group, so
//	the others exit too. A cancelled ctx makes the shutdown watcher drain
//	and stop the server.
func serve(ctx context.Context, cfg config.BintreeConfig, lis net.Listener, watch *config.Watcher) error {
	gin.SetMode(cfg.Server.Mode)

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		_ = lis.Close()
		if watch != nil {
			_ = watch.Close()
		}
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			slog.Warn("Telemetry shutdown failed", "error", err)
		}
	}()

	svc := treequery.NewService(treequery.ServiceConfig{
		MaxNodes:       cfg.Limits.MaxNodes,
		MaxCachedTrees: cfg.Limits.MaxCachedTrees,
		TreeTTL:        cfg.Limits.TreeTTL,
	})

	var draining atomic.Bool
	handlers := treequery.NewHandlers(svc).WithReadiness(func() bool { return !draining.Load() })

	router := treequery.NewRouter(treequery.RouterConfig{
		ServiceName:    cfg.Telemetry.ServiceName,
		RateLimit:      cfg.Server.RateLimit,
		RateBurst:      cfg.Server.RateBurst,
		MaxBodyBytes:   cfg.Limits.MaxBodyBytes,
		RequestTimeout: cfg.Server.RequestTimeout,
		Metrics:        telemetry.MetricsHandler(),
	}, handlers)

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	if watch != nil {
		g.Go(func() error { return watch.Run(gctx) })
	}
	g.Go(func() error {
		slog.Info("Starting bintree server", "address", lis.Addr().String())
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		draining.Store(true)
		slog.Info("Shutting down bintree server", "grace", cfg.Server.ShutdownGrace.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("Server stopped")
	return nil
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jopli11/PreStocks-Tracker/internal/config"
	"github.com/jopli11/PreStocks-Tracker/internal/database"
	"github.com/jopli11/PreStocks-Tracker/internal/feed"
	"github.com/jopli11/PreStocks-Tracker/internal/history"
	"github.com/jopli11/PreStocks-Tracker/internal/refresh"
	"github.com/jopli11/PreStocks-Tracker/internal/server"
	"github.com/jopli11/PreStocks-Tracker/internal/targets"
	"github.com/jopli11/PreStocks-Tracker/internal/ticker"
	"github.com/jopli11/PreStocks-Tracker/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/tickerd.local.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting tickerd",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"instance_id", cfg.Instance.ID,
		"feed_url", cfg.Feed.URL,
		"poll_interval", cfg.Poll.Interval,
		"history_enabled", cfg.History.Enabled,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Create feed client
	feedClient := feed.NewClient(
		cfg.Feed.URL,
		feed.WithTimeout(cfg.Feed.Timeout),
		feed.WithLogger(logger),
	)

	// Create refresher
	refresher := refresh.New(refresh.Config{
		Interval: cfg.Poll.Interval,
		Timeout:  cfg.Feed.Timeout,
	}, feedClient, logger)

	// Create ticker server
	assembler := ticker.NewAssembler(targets.Default(), nil)
	srv := server.New(server.Config{
		Addr: fmt.Sprintf(":%d", cfg.Server.Port),
	}, refresher, assembler, refresher.Subscribe(), logger)

	// Optional snapshot history
	var recorder *history.Recorder
	if cfg.History.Enabled {
		logger.Info("connecting to history database",
			"host", cfg.History.Database.Host,
			"port", cfg.History.Database.Port,
			"database", cfg.History.Database.Name,
		)

		pool, err := database.Connect(ctx, cfg.History.Database)
		if err != nil {
			logger.Error("failed to connect to history database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		recorder = history.NewRecorder(pool, refresher.Subscribe(), logger)
		if err := recorder.Start(ctx); err != nil {
			logger.Error("failed to start history recorder", "error", err)
			os.Exit(1)
		}
		srv.SetDBHealth(recorder)
	}

	// Start the refresh loop
	if err := refresher.Start(ctx); err != nil {
		logger.Error("failed to start refresher", "error", err)
		os.Exit(1)
	}

	logger.Info("tickerd running",
		"instance_id", cfg.Instance.ID,
		"ticker_url", fmt.Sprintf("http://localhost:%d/api/ticker", cfg.Server.Port),
	)

	// Serve until shutdown
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	if err := g.Wait(); err != nil {
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := refresher.Stop(shutdownCtx); err != nil {
		logger.Warn("refresher stop timed out", "error", err)
	}
	if recorder != nil {
		if err := recorder.Stop(shutdownCtx); err != nil {
			logger.Warn("history recorder stop timed out", "error", err)
		}
	}

	logger.Info("tickerd stopped")
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  "Serve the search API; blocks until SIGINT/SIGTERM.",
	RunE:  runServeCmd,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServeCmd(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"providers", len(cfg.Providers),
		"default_location", cfg.DefaultLocation,
		"addr", cfg.Server.Addr,
	)

	agg := buildAggregator(cfg, logger)

	sources := map[string]bool{
		string(model.SourceAdzuna): cfg.Adzuna.AppID != "" && cfg.Adzuna.AppKey != "",
		string(model.SourceReed):   cfg.Reed.APIKey != "",
	}
	handlers := server.NewHandlers(agg, server.Defaults{
		Location:   cfg.DefaultLocation,
		MaxResults: cfg.DefaultMaxResults,
	}, sources, logger)

	srv := server.New(cfg.Server.Addr, handlers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	}

	logger.Info("goodbye")
	return nil
}

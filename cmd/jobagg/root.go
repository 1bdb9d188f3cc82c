package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/Vincent-Ngobeh/job-aggregator/internal/adapter"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/aggregate"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/config"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/dedup"
	"github.com/Vincent-Ngobeh/job-aggregator/internal/model"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "jobagg",
	Short: "Search jobs across boards from one place",
	Long:  "jobagg queries Adzuna and Reed concurrently, merges and de-duplicates the listings, and ranks them by date and salary.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: JOBAGG_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig resolves the config path and parses it.
// Priority: explicit path arg > JOBAGG_CONFIG env var > "./config.yaml"
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		if env := os.Getenv("JOBAGG_CONFIG"); env != "" {
			path = env
		} else {
			path = "config.yaml"
		}
	}
	return config.Load(path)
}

func setupLogger(dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: logLevel}))
}

// buildProviders constructs one adapter per enabled provider, preserving
// the configured priority order.
func buildProviders(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) []model.Provider {
	var providers []model.Provider
	for _, p := range cfg.Providers {
		if !p.Enabled {
			continue
		}
		switch p.Name {
		case config.ProviderAdzuna:
			providers = append(providers, adapter.NewAdzunaAdapter(cfg.Adzuna.AppID, cfg.Adzuna.AppKey, httpClient, logger))
		case config.ProviderReed:
			providers = append(providers, adapter.NewReedAdapter(cfg.Reed.APIKey, httpClient, logger))
		}
		logger.Debug("registered provider", "name", p.Name)
	}
	return providers
}

func buildAggregator(cfg *config.Config, logger *slog.Logger) *aggregate.Aggregator {
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	providers := buildProviders(cfg, httpClient, logger)
	return aggregate.New(providers, dedup.New(), logger)
}

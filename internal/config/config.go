package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Known provider names accepted in the providers list.
const (
	ProviderAdzuna = "adzuna"
	ProviderReed   = "reed"
)

// Config is the root configuration for the job aggregator.
type Config struct {
	// Providers in source priority order: when two providers return the
	// same opening, the one listed earlier survives deduplication.
	Providers         []ProviderConfig
	DefaultLocation   string
	DefaultMaxResults int
	HTTPTimeout       time.Duration
	Adzuna            AdzunaCredentials
	Reed              ReedCredentials
	Server            ServerConfig
}

// ProviderConfig names one provider and whether it is queried.
type ProviderConfig struct {
	Name    string `yaml:"name"`
	Enabled bool   `yaml:"enabled"`
}

// AdzunaCredentials holds the Adzuna API credential pair.
type AdzunaCredentials struct {
	AppID  string `yaml:"app_id"`
	AppKey string `yaml:"app_key"`
}

// ReedCredentials holds the Reed API key. Reed uses it as the Basic auth
// username with an empty password.
type ReedCredentials struct {
	APIKey string `yaml:"api_key"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Providers         []ProviderConfig  `yaml:"providers"`
	DefaultLocation   string            `yaml:"default_location"`
	DefaultMaxResults int               `yaml:"default_max_results"`
	HTTPTimeout       string            `yaml:"http_timeout"`
	Adzuna            AdzunaCredentials `yaml:"adzuna"`
	Reed              ReedCredentials   `yaml:"reed"`
	Server            ServerConfig      `yaml:"server"`
}

// Load reads and parses the YAML config at path, validates it, and returns
// Config. A .env file in the working directory is loaded first (if
// present) so that ${VAR} references in the YAML can pull credentials from
// the environment.
func Load(path string) (*Config, error) {
	// .env is optional; real environment variables always work.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	timeout := 30 * time.Second
	if raw.HTTPTimeout != "" {
		timeout, err = time.ParseDuration(raw.HTTPTimeout)
		if err != nil {
			return nil, fmt.Errorf("parse http_timeout %q: %w", raw.HTTPTimeout, err)
		}
	}

	cfg := &Config{
		Providers:         raw.Providers,
		DefaultLocation:   raw.DefaultLocation,
		DefaultMaxResults: raw.DefaultMaxResults,
		HTTPTimeout:       timeout,
		Adzuna:            raw.Adzuna,
		Reed:              raw.Reed,
		Server:            raw.Server,
	}

	if cfg.DefaultLocation == "" {
		cfg.DefaultLocation = "london"
	}
	if cfg.DefaultMaxResults == 0 {
		cfg.DefaultMaxResults = 50
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if len(cfg.Providers) == 0 {
		// Default priority order: Adzuna first, as it tends to carry
		// richer salary and date data.
		cfg.Providers = []ProviderConfig{
			{Name: ProviderAdzuna, Enabled: true},
			{Name: ProviderReed, Enabled: true},
		}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive, got %v", cfg.HTTPTimeout)
	}
	if cfg.DefaultMaxResults < 1 || cfg.DefaultMaxResults > 200 {
		return fmt.Errorf("default_max_results must be between 1 and 200, got %d", cfg.DefaultMaxResults)
	}

	seen := make(map[string]bool)
	enabled := 0
	for _, p := range cfg.Providers {
		switch p.Name {
		case ProviderAdzuna, ProviderReed:
		default:
			return fmt.Errorf("unknown provider %q", p.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("provider %q listed twice", p.Name)
		}
		seen[p.Name] = true
		if p.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return fmt.Errorf("at least one provider must be enabled")
	}

	return nil
}

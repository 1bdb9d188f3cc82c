package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: adzuna
    enabled: true
  - name: reed
    enabled: true
default_location: manchester
default_max_results: 25
http_timeout: 15s
adzuna:
  app_id: "my-id"
  app_key: "my-key"
reed:
  api_key: "reed-key"
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Providers) != 2 || cfg.Providers[0].Name != "adzuna" || cfg.Providers[1].Name != "reed" {
		t.Errorf("Providers = %+v", cfg.Providers)
	}
	if cfg.DefaultLocation != "manchester" {
		t.Errorf("DefaultLocation = %q", cfg.DefaultLocation)
	}
	if cfg.DefaultMaxResults != 25 {
		t.Errorf("DefaultMaxResults = %d", cfg.DefaultMaxResults)
	}
	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("HTTPTimeout = %v, want 15s", cfg.HTTPTimeout)
	}
	if cfg.Adzuna.AppID != "my-id" || cfg.Adzuna.AppKey != "my-key" {
		t.Errorf("Adzuna = %+v", cfg.Adzuna)
	}
	if cfg.Reed.APIKey != "reed-key" {
		t.Errorf("Reed = %+v", cfg.Reed)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Server.Addr = %q", cfg.Server.Addr)
	}
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
adzuna:
  app_id: "id"
  app_key: "key"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DefaultLocation != "london" {
		t.Errorf("DefaultLocation = %q, want london", cfg.DefaultLocation)
	}
	if cfg.DefaultMaxResults != 50 {
		t.Errorf("DefaultMaxResults = %d, want 50", cfg.DefaultMaxResults)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
	// Default priority order: adzuna before reed.
	if len(cfg.Providers) != 2 || cfg.Providers[0].Name != ProviderAdzuna || cfg.Providers[1].Name != ProviderReed {
		t.Errorf("Providers = %+v", cfg.Providers)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_REED_KEY", "from-env")
	path := writeConfig(t, `
reed:
  api_key: "${TEST_REED_KEY}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Reed.APIKey != "from-env" {
		t.Errorf("Reed.APIKey = %q, want from-env", cfg.Reed.APIKey)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml")); err == nil {
		t.Fatal("Load: expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "providers: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid YAML")
	}
}

func TestLoad_UnknownProvider(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: monster
    enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unknown provider")
	}
}

func TestLoad_DuplicateProvider(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: reed
    enabled: true
  - name: reed
    enabled: false
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for duplicate provider")
	}
}

func TestLoad_NoEnabledProviders(t *testing.T) {
	path := writeConfig(t, `
providers:
  - name: adzuna
    enabled: false
  - name: reed
    enabled: false
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error when every provider is disabled")
	}
}

func TestLoad_MaxResultsOutOfRange(t *testing.T) {
	path := writeConfig(t, "default_max_results: 500\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for default_max_results > 200")
	}
}

func TestLoad_BadTimeout(t *testing.T) {
	path := writeConfig(t, "http_timeout: soon\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unparseable http_timeout")
	}
}

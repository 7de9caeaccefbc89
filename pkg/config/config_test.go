package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	return path
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), "test-version")
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Version != "test-version" {
		t.Errorf("expected Version=test-version, got %s", cfg.Version)
	}
	if cfg.Port != "8080" {
		t.Errorf("expected default Port=8080, got %s", cfg.Port)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("expected derived BaseURL, got %s", cfg.BaseURL)
	}
	if cfg.Datasource.Type != "sqlite" || cfg.Datasource.Path != "business_data.db" {
		t.Errorf("unexpected datasource defaults: %+v", cfg.Datasource)
	}
	if !cfg.Demo.SeedOnStart() || cfg.Demo.Seed != 42 || cfg.Demo.SalesCount != 1000 {
		t.Errorf("unexpected demo defaults: %+v", cfg.Demo)
	}
	if cfg.LLM.Provider != "keyword" || cfg.LLM.UsesModel() {
		t.Errorf("expected keyword provider, got %q", cfg.LLM.Provider)
	}
	if cfg.History.Backend != "memory" || cfg.History.MaxEntries != 50 || cfg.History.DisplayLimit != 5 {
		t.Errorf("unexpected history defaults: %+v", cfg.History)
	}
	if cfg.Results.TTL() != 30*time.Minute {
		t.Errorf("expected 30m result TTL, got %s", cfg.Results.TTL())
	}
}

func TestLoadFile_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, `
port: "9000"
env: "test"
datasource:
  type: "postgres"
  host: "db.example.com"
  port: 5433
  user: "analyst"
  database: "sales"
history:
  backend: "redis"
  redis_addr: "redis.example.com:6379"
`)

	t.Setenv("PORT", "9100")
	t.Setenv("DATASOURCE_PASSWORD", "s3cret")

	cfg, err := LoadFile(path, "v1")
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if cfg.Port != "9100" {
		t.Errorf("expected Port=9100 (from env), got %s", cfg.Port)
	}
	if cfg.Env != "test" {
		t.Errorf("expected Env=test (from YAML), got %s", cfg.Env)
	}
	if cfg.History.Backend != "redis" || cfg.History.RedisAddr != "redis.example.com:6379" {
		t.Errorf("unexpected history config: %+v", cfg.History)
	}

	conn := cfg.Datasource.ConnectionConfig()
	if conn["host"] != "db.example.com" || conn["port"] != 5433 || conn["database"] != "sales" {
		t.Errorf("unexpected connection config: %v", conn)
	}
	if conn["password"] != "s3cret" {
		t.Errorf("expected password from env, got %v", conn["password"])
	}
	if _, ok := conn["ssl_mode"]; ok {
		t.Error("unset ssl_mode should be left to the adapter default")
	}
}

func TestLoadFile_DemoSeedOptOut(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		env      string
		wantSeed bool
	}{
		{name: "unset seeds", yaml: "demo:\n  seed: 7\n", wantSeed: true},
		{name: "yaml skip", yaml: "demo:\n  skip_seed: true\n", wantSeed: false},
		{name: "yaml explicit false seeds", yaml: "demo:\n  skip_seed: false\n", wantSeed: true},
		{name: "env skip", yaml: "demo:\n  seed: 7\n", env: "true", wantSeed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("DEMO_SKIP_SEED", tt.env)
			}
			cfg, err := LoadFile(writeConfig(t, tt.yaml), "test")
			if err != nil {
				t.Fatalf("LoadFile() failed: %v", err)
			}
			if got := cfg.Demo.SeedOnStart(); got != tt.wantSeed {
				t.Errorf("SeedOnStart() = %v, want %v", got, tt.wantSeed)
			}
		})
	}
}

func TestDatasourceConfig_SQLiteConnectionConfig(t *testing.T) {
	ds := DatasourceConfig{Type: "sqlite", Path: "/tmp/demo.db", Host: "ignored"}
	conn := ds.ConnectionConfig()

	if len(conn) != 1 || conn["path"] != "/tmp/demo.db" {
		t.Errorf("expected only the path, got %v", conn)
	}
}

func TestLoad_ReadsConfigFromWorkingDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("port: \"7777\"\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".env"), []byte("DEMO_SALES_COUNT=25\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		os.Chdir(originalDir)
		os.Unsetenv("DEMO_SALES_COUNT")
	})

	cfg, err := Load("v2")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Port != "7777" {
		t.Errorf("expected Port=7777, got %s", cfg.Port)
	}
	if cfg.Demo.SalesCount != 25 {
		t.Errorf("expected SalesCount=25 from .env, got %d", cfg.Demo.SalesCount)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Datasource: DatasourceConfig{Type: "sqlite", Path: "demo.db"},
			LLM:        LLMConfig{Provider: "keyword"},
			History:    HistoryConfig{Backend: "memory", MaxEntries: 10},
			Results:    ResultsConfig{TTLMinutes: 5},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"type is normalized", func(c *Config) { c.Datasource.Type = " SQLite " }, ""},
		{"sqlite needs a path", func(c *Config) { c.Datasource.Path = "" }, "datasource.path"},
		{"openai needs endpoint", func(c *Config) { c.LLM.Provider = "openai"; c.LLM.Model = "gpt-4o" }, "llm.endpoint"},
		{"anthropic needs key", func(c *Config) { c.LLM.Provider = "anthropic"; c.LLM.Model = "claude" }, "LLM_API_KEY"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "cohere" }, "unknown llm.provider"},
		{"unknown history backend", func(c *Config) { c.History.Backend = "disk" }, "history.backend"},
		{"history needs room", func(c *Config) { c.History.MaxEntries = 0 }, "max_entries"},
		{"ttl must be positive", func(c *Config) { c.Results.TTLMinutes = 0 }, "ttl_minutes"},
		{"tls pair", func(c *Config) { c.TLSCertPath = "cert.pem" }, "tls_key_path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateTLS_BothProvided(t *testing.T) {
	tmpDir := t.TempDir()
	cert := filepath.Join(tmpDir, "cert.pem")
	key := filepath.Join(tmpDir, "key.pem")
	for _, p := range []string{cert, key} {
		if err := os.WriteFile(p, []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", p, err)
		}
	}

	cfg := &Config{TLSCertPath: cert, TLSKeyPath: key}
	if err := cfg.validateTLS(); err != nil {
		t.Errorf("expected valid TLS config, got %v", err)
	}

	cfg.TLSKeyPath = filepath.Join(tmpDir, "missing.pem")
	if err := cfg.validateTLS(); err == nil {
		t.Error("expected error for missing key file")
	}
}

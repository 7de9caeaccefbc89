package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DefaultConfigFile is read when present; without it configuration comes from the environment only.
const DefaultConfigFile = "config.yaml"

// Config holds all configuration for ekaya-bi.
// Configuration can come from YAML file (config.yaml) or environment variables.
// Environment variables always override YAML values for fields that support both.
// Secrets (passwords, keys) must only come from environment variables.
type Config struct {
	// Server configuration
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`
	Env      string `yaml:"env" env:"ENVIRONMENT" env-default:"local"`
	BaseURL  string `yaml:"base_url" env:"BASE_URL" env-default:""` // Auto-derived from Port if empty
	Version  string `yaml:"-"`

	// TLS configuration (optional - if both provided, server uses HTTPS)
	TLSCertPath string `yaml:"tls_cert_path" env:"TLS_CERT_PATH" env-default:""`
	TLSKeyPath  string `yaml:"tls_key_path" env:"TLS_KEY_PATH" env-default:""`

	Log        LogConfig        `yaml:"log"`
	Datasource DatasourceConfig `yaml:"datasource"`
	Demo       DemoConfig       `yaml:"demo"`
	LLM        LLMConfig        `yaml:"llm"`
	History    HistoryConfig    `yaml:"history"`
	Results    ResultsConfig    `yaml:"results"`
}

// LogConfig controls the zap logger and optional rotating log file.
type LogConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format     string `yaml:"format" env:"LOG_FORMAT" env-default:""` // "console" or "json"; empty picks by environment
	File       string `yaml:"file" env:"LOG_FILE" env-default:""`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"LOG_MAX_SIZE_MB" env-default:"100"`
	MaxBackups int    `yaml:"max_backups" env:"LOG_MAX_BACKUPS" env-default:"3"`
	MaxAgeDays int    `yaml:"max_age_days" env:"LOG_MAX_AGE_DAYS" env-default:"28"`
}

// DatasourceConfig selects the business data store.
type DatasourceConfig struct {
	Type     string `yaml:"type" env:"DATASOURCE_TYPE" env-default:"sqlite"`
	Path     string `yaml:"path" env:"DATASOURCE_PATH" env-default:"business_data.db"` // sqlite only
	Host     string `yaml:"host" env:"DATASOURCE_HOST" env-default:"localhost"`
	Port     int    `yaml:"port" env:"DATASOURCE_PORT" env-default:"0"` // 0 uses the adapter default
	User     string `yaml:"user" env:"DATASOURCE_USER" env-default:""`
	Password string `yaml:"-" env:"DATASOURCE_PASSWORD"` // Secret - not in YAML
	Database string `yaml:"database" env:"DATASOURCE_DATABASE" env-default:""`
	SSLMode  string `yaml:"ssl_mode" env:"DATASOURCE_SSL_MODE" env-default:""`
}

// ConnectionConfig returns the adapter config map for the configured type.
func (c *DatasourceConfig) ConnectionConfig() map[string]any {
	if c.Type == "sqlite" {
		return map[string]any{"path": c.Path}
	}

	m := map[string]any{
		"host":     c.Host,
		"user":     c.User,
		"password": c.Password,
		"database": c.Database,
	}
	if c.Port > 0 {
		m["port"] = c.Port
	}
	if c.SSLMode != "" {
		m["ssl_mode"] = c.SSLMode
	}
	return m
}

// DemoConfig controls the demo fixture.
type DemoConfig struct {
	// SkipSeed disables loading the demo dataset at startup. The zero value seeds, so
	// both YAML and env can turn seeding off.
	SkipSeed   bool  `yaml:"skip_seed" env:"DEMO_SKIP_SEED"`
	Seed       int64 `yaml:"seed" env:"DEMO_SEED" env-default:"42"`
	SalesCount int   `yaml:"sales_count" env:"DEMO_SALES_COUNT" env-default:"1000"`
}

// SeedOnStart reports whether the demo dataset should be loaded at startup.
func (c *DemoConfig) SeedOnStart() bool {
	return !c.SkipSeed
}

// LLMConfig selects how questions are classified.
// Provider "keyword" uses the built-in keyword rules and needs no model.
type LLMConfig struct {
	Provider   string `yaml:"provider" env:"LLM_PROVIDER" env-default:"keyword"`
	Endpoint   string `yaml:"endpoint" env:"LLM_ENDPOINT" env-default:""`
	Model      string `yaml:"model" env:"LLM_MODEL" env-default:""`
	APIKey     string `yaml:"-" env:"LLM_API_KEY"` // Secret - not in YAML
	JSONMode   bool   `yaml:"json_mode" env:"LLM_JSON_MODE" env-default:"false"`
	MaxRetries int    `yaml:"max_retries" env:"LLM_MAX_RETRIES" env-default:"2"`
}

// UsesModel reports whether a language model backs classification.
func (c *LLMConfig) UsesModel() bool {
	return c.Provider != "" && c.Provider != "keyword"
}

// HistoryConfig selects where answered questions are kept.
type HistoryConfig struct {
	Backend       string `yaml:"backend" env:"HISTORY_BACKEND" env-default:"memory"` // "memory" or "redis"
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string `yaml:"-" env:"REDIS_PASSWORD"` // Secret - not in YAML
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB" env-default:"0"`
	RedisKey      string `yaml:"redis_key" env:"HISTORY_REDIS_KEY" env-default:"ekaya-bi:history"`
	MaxEntries    int    `yaml:"max_entries" env:"HISTORY_MAX_ENTRIES" env-default:"50"`
	DisplayLimit  int    `yaml:"display_limit" env:"HISTORY_DISPLAY_LIMIT" env-default:"5"`
}

// ResultsConfig controls how long answers stay available for export and charting.
type ResultsConfig struct {
	TTLMinutes int `yaml:"ttl_minutes" env:"RESULTS_TTL_MINUTES" env-default:"30"`
}

// TTL returns the result retention as a duration.
func (c *ResultsConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

// Load reads .env (if present), then config.yaml (if present) with environment variable overrides.
// The version parameter is injected at build time and set on the returned Config.
func Load(version string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return LoadFile(DefaultConfigFile, version)
}

// LoadFile reads configuration from path, or from the environment alone when path does not exist.
func LoadFile(path, version string) (*Config, error) {
	cfg := &Config{Version: version}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Auto-derive BaseURL from Port if not explicitly set
	if cfg.BaseURL == "" {
		scheme := "http"
		if cfg.TLSCertPath != "" {
			scheme = "https"
		}
		cfg.BaseURL = (&url.URL{
			Scheme: scheme,
			Host:   "localhost:" + cfg.Port,
		}).String()
	}

	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	if err := c.validateTLS(); err != nil {
		return fmt.Errorf("invalid TLS configuration: %w", err)
	}

	c.Datasource.Type = strings.ToLower(strings.TrimSpace(c.Datasource.Type))
	if c.Datasource.Type == "" {
		return fmt.Errorf("datasource.type is required")
	}
	if c.Datasource.Type == "sqlite" && c.Datasource.Path == "" {
		return fmt.Errorf("datasource.path is required for sqlite")
	}

	switch c.LLM.Provider {
	case "", "keyword":
	case "openai":
		if c.LLM.Endpoint == "" || c.LLM.Model == "" {
			return fmt.Errorf("llm.endpoint and llm.model are required for provider %q", c.LLM.Provider)
		}
	case "anthropic":
		if c.LLM.Model == "" || c.LLM.APIKey == "" {
			return fmt.Errorf("llm.model and LLM_API_KEY are required for provider %q", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("unknown llm.provider %q (want keyword, openai or anthropic)", c.LLM.Provider)
	}

	switch c.History.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown history.backend %q (want memory or redis)", c.History.Backend)
	}
	if c.History.MaxEntries <= 0 {
		return fmt.Errorf("history.max_entries must be positive")
	}

	if c.Demo.SalesCount < 0 {
		return fmt.Errorf("demo.sales_count must not be negative")
	}
	if c.Results.TTLMinutes <= 0 {
		return fmt.Errorf("results.ttl_minutes must be positive")
	}
	return nil
}

// validateTLS ensures TLS configuration is valid if provided.
// Both cert and key must be provided together, and files must exist.
func (c *Config) validateTLS() error {
	certSet := c.TLSCertPath != ""
	keySet := c.TLSKeyPath != ""

	if certSet != keySet {
		return fmt.Errorf("both tls_cert_path and tls_key_path must be provided together")
	}

	if certSet {
		if _, err := os.Stat(c.TLSCertPath); err != nil {
			return fmt.Errorf("TLS cert file does not exist: %w", err)
		}
		if _, err := os.Stat(c.TLSKeyPath); err != nil {
			return fmt.Errorf("TLS key file does not exist: %w", err)
		}
	}

	return nil
}

// IsProduction reports whether the server runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb" // SQL Server driver

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
)

// Adapter provides SQL Server connectivity.
type Adapter struct {
	config *Config
	db     *sql.DB
}

// buildConnectionString builds a sqlserver:// URL for SQL Server authentication.
func buildConnectionString(cfg *Config) string {
	query := url.Values{}
	query.Add("database", cfg.Database)

	if cfg.Encrypt {
		query.Add("encrypt", "true")
	} else {
		query.Add("encrypt", "false")
	}

	if cfg.TrustServerCertificate {
		query.Add("TrustServerCertificate", "true")
	}

	if cfg.ConnectionTimeout > 0 {
		query.Add("connection timeout", fmt.Sprintf("%d", cfg.ConnectionTimeout))
	}

	return fmt.Sprintf("sqlserver://%s:%s@%s:%d?%s",
		url.QueryEscape(cfg.Username),
		url.QueryEscape(cfg.Password),
		config.ResolveHostForDocker(cfg.Host),
		cfg.Port,
		query.Encode(),
	)
}

// openDB validates the config and opens a single-connection handle.
func openDB(cfg *Config) (*sql.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := sql.Open("sqlserver", buildConnectionString(cfg))
	if err != nil {
		return nil, fmt.Errorf("open SQL auth connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewAdapter creates a SQL Server adapter and verifies the server answers.
func NewAdapter(ctx context.Context, cfg *Config) (*Adapter, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connection test failed: %w", err)
	}

	return &Adapter{config: cfg, db: db}, nil
}

// TestConnection verifies the database is reachable and is the configured database.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var currentDB string
	if err := a.db.QueryRowContext(ctx, "SELECT DB_NAME()").Scan(&currentDB); err != nil {
		return fmt.Errorf("failed to get current database name: %w", err)
	}

	if !strings.EqualFold(currentDB, a.config.Database) {
		return fmt.Errorf("connected to wrong database: expected %q but connected to %q", a.config.Database, currentDB)
	}

	return nil
}

// Close releases the database handle.
func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

// Ensure Adapter implements ConnectionTester at compile time.
var _ datasource.ConnectionTester = (*Adapter)(nil)

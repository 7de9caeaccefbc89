package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/glebarez/go-sqlite" // registers the "sqlite" database/sql driver

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// DriverName is the database/sql driver used for SQLite files.
const DriverName = "sqlite"

// Adapter provides SQLite connectivity.
type Adapter struct {
	config *Config
	db     *sql.DB
}

// openDB opens a dedicated single-connection handle to the database file.
func openDB(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open(DriverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewAdapter opens the database file. The returned adapter owns the handle.
func NewAdapter(ctx context.Context, cfg *Config) (*Adapter, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return &Adapter{config: cfg, db: db}, nil
}

// TestConnection verifies the file opens and its catalog is readable.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var tables int
	if err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&tables); err != nil {
		return fmt.Errorf("read catalog failed: %w", err)
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

// quoteIdentifier quotes an identifier with double quotes, doubling embedded quotes.
func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// Ensure Adapter implements ConnectionTester at compile time.
var _ datasource.ConnectionTester = (*Adapter)(nil)

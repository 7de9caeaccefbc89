package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"

	driver "github.com/go-sql-driver/mysql"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-bi/pkg/config"
)

// Adapter provides MySQL connectivity.
type Adapter struct {
	config *Config
	db     *sql.DB
}

// buildDSN renders the driver DSN. DATE and DATETIME values are parsed into time.Time.
func buildDSN(cfg *Config) string {
	dsn := driver.NewConfig()
	dsn.User = cfg.User
	dsn.Passwd = cfg.Password
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(config.ResolveHostForDocker(cfg.Host), strconv.Itoa(cfg.Port))
	dsn.DBName = cfg.Database
	dsn.ParseTime = true
	dsn.TLSConfig = cfg.TLS
	return dsn.FormatDSN()
}

func openDB(cfg *Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", buildDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewAdapter creates a MySQL adapter with its own connection.
func NewAdapter(ctx context.Context, cfg *Config) (*Adapter, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return &Adapter{config: cfg, db: db}, nil
}

// TestConnection verifies the server answers and the configured database is selected.
func (a *Adapter) TestConnection(ctx context.Context) error {
	if err := a.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}

	var currentDB sql.NullString
	if err := a.db.QueryRowContext(ctx, "SELECT DATABASE()").Scan(&currentDB); err != nil {
		return fmt.Errorf("failed to get current database name: %w", err)
	}

	if !strings.EqualFold(currentDB.String, a.config.Database) {
		return fmt.Errorf("connected to wrong database: expected %q but connected to %q", a.config.Database, currentDB.String)
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

// quoteIdentifier quotes with backticks, doubling embedded backticks.
func quoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Ensure Adapter implements ConnectionTester at compile time.
var _ datasource.ConnectionTester = (*Adapter)(nil)

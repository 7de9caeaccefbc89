package sqlite

import (
	"context"
	"database/sql"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// QueryExecutor provides SQLite query execution.
type QueryExecutor struct {
	db *sql.DB
}

// NewQueryExecutor opens the database file for querying. The executor owns the handle.
func NewQueryExecutor(ctx context.Context, cfg *Config) (*QueryExecutor, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return &QueryExecutor{db: db}, nil
}

// Query runs a statement verbatim and returns bounded results.
// See datasource.QueryExecutor.Query for limit behavior.
func (e *QueryExecutor) Query(ctx context.Context, sqlQuery string, limit int) (*datasource.QueryExecutionResult, error) {
	rows, err := e.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return datasource.ScanSQLRows(rows, limit, nil)
}

// QuoteIdentifier safely quotes a SQL identifier using SQLite's double-quote rules.
func (e *QueryExecutor) QuoteIdentifier(name string) string {
	return quoteIdentifier(name)
}

// Close releases the database handle.
func (e *QueryExecutor) Close() error {
	return e.db.Close()
}

// Ensure QueryExecutor implements datasource.QueryExecutor at compile time.
var _ datasource.QueryExecutor = (*QueryExecutor)(nil)

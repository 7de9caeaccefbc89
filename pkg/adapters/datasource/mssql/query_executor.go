package mssql

import (
	"context"
	"database/sql"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// QueryExecutor provides SQL Server query execution.
type QueryExecutor struct {
	db *sql.DB
}

// NewQueryExecutor creates a SQL Server query executor with its own connection.
func NewQueryExecutor(ctx context.Context, cfg *Config) (*QueryExecutor, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return &QueryExecutor{db: db}, nil
}

// Query runs a statement verbatim and returns bounded results.
// The statement is not wrapped in TOP because SQL Server rejects ORDER BY inside
// derived tables; the limit is applied while reading.
func (e *QueryExecutor) Query(ctx context.Context, sqlQuery string, limit int) (*datasource.QueryExecutionResult, error) {
	rows, err := e.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return datasource.ScanSQLRows(rows, limit, convertValue)
}

// QuoteIdentifier safely quotes a SQL identifier using SQL Server's bracket rules.
func (e *QueryExecutor) QuoteIdentifier(name string) string {
	return quoteName(name)
}

// Close releases the database handle.
func (e *QueryExecutor) Close() error {
	if e.db != nil {
		return e.db.Close()
	}
	return nil
}

// Ensure QueryExecutor implements datasource.QueryExecutor at compile time.
var _ datasource.QueryExecutor = (*QueryExecutor)(nil)

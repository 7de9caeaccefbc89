package mysql

import (
	"context"
	"database/sql"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// QueryExecutor provides MySQL query execution.
type QueryExecutor struct {
	db *sql.DB
}

// NewQueryExecutor creates a MySQL query executor with its own connection.
func NewQueryExecutor(ctx context.Context, cfg *Config) (*QueryExecutor, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}
	return &QueryExecutor{db: db}, nil
}

// Query runs a statement verbatim and returns bounded results.
func (e *QueryExecutor) Query(ctx context.Context, sqlQuery string, limit int) (*datasource.QueryExecutionResult, error) {
	rows, err := e.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return datasource.ScanSQLRows(rows, limit, convertValue)
}

// convertValue turns DECIMAL text into float64; the driver returns it as bytes.
func convertValue(v any, dbType string) any {
	if v == nil {
		return nil
	}
	if datasource.IsDecimalType(dbType) {
		return datasource.ParseDecimal(v)
	}
	return datasource.NormalizeValue(v)
}

// QuoteIdentifier safely quotes a SQL identifier using MySQL backticks.
func (e *QueryExecutor) QuoteIdentifier(name string) string {
	return quoteIdentifier(name)
}

// Close releases the database handle.
func (e *QueryExecutor) Close() error {
	return e.db.Close()
}

// Ensure QueryExecutor implements datasource.QueryExecutor at compile time.
var _ datasource.QueryExecutor = (*QueryExecutor)(nil)

package datasource

import "context"

// ConnectionTester tests database connectivity.
// Each implementation owns its connection and must be closed when done.
type ConnectionTester interface {
	// TestConnection verifies the database is reachable with valid credentials.
	TestConnection(ctx context.Context) error

	// Close releases the database connection.
	Close() error
}

// SchemaDiscoverer lists tables and their columns.
// Each implementation owns its connection and must be closed when done.
type SchemaDiscoverer interface {
	// DiscoverTables returns all user tables (excludes system schemas).
	DiscoverTables(ctx context.Context) ([]TableMetadata, error)

	// DiscoverColumns returns columns for a table ordered by ordinal position.
	DiscoverColumns(ctx context.Context, schemaName, tableName string) ([]ColumnMetadata, error)

	// Close releases the database connection.
	Close() error
}

// MaxQueryLimit is the hard cap on rows returned by Query.
// This protects against unbounded queries that could exhaust memory.
const MaxQueryLimit = 1000

// QueryExecutor runs read queries against a datasource.
// Each implementation owns its connection and must be closed when done.
type QueryExecutor interface {
	// Query runs sqlQuery exactly as given and returns at most limit rows.
	// The statement text is never rewritten; the limit is enforced while reading rows.
	//
	// Limit behavior:
	//   - limit <= 0: uses MaxQueryLimit
	//   - limit > MaxQueryLimit: capped to MaxQueryLimit
	//
	// Errors reported by the store are returned unwrapped so callers can show them as-is.
	Query(ctx context.Context, sqlQuery string, limit int) (*QueryExecutionResult, error)

	// QuoteIdentifier safely quotes a SQL identifier (table or column name)
	// using the dialect's quoting rules.
	QuoteIdentifier(name string) string

	// Close releases any resources held by the executor.
	Close() error
}

// ColumnInfo describes a result column with the store's type name.
type ColumnInfo struct {
	Name string `json:"name"`
	Type string `json:"type"` // Database type name (e.g., "TEXT", "INT8", "DECIMAL")
}

// QueryExecutionResult holds the results from executing a query.
// Rows are positional and follow Columns.
type QueryExecutionResult struct {
	Columns   []ColumnInfo `json:"columns"`
	Rows      [][]any      `json:"rows"`
	RowCount  int          `json:"row_count"`
	Truncated bool         `json:"truncated"`
}

// ColumnNames returns the result column names in order.
func (r *QueryExecutionResult) ColumnNames() []string {
	names := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		names[i] = c.Name
	}
	return names
}

// ColumnTypes returns the result column type names in order.
func (r *QueryExecutionResult) ColumnTypes() []string {
	types := make([]string, len(r.Columns))
	for i, c := range r.Columns {
		types[i] = c.Type
	}
	return types
}

// EffectiveLimit applies the MaxQueryLimit rules to a requested limit.
func EffectiveLimit(limit int) int {
	if limit <= 0 || limit > MaxQueryLimit {
		return MaxQueryLimit
	}
	return limit
}

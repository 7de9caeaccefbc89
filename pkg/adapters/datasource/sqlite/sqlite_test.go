package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// newTestDatabase creates a file database with a small sales table.
func newTestDatabase(t *testing.T, rows int) *Config {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sql.Open(DriverName, path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE sales (
		id INTEGER PRIMARY KEY,
		product_name TEXT NOT NULL,
		amount REAL,
		region TEXT DEFAULT 'North'
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE customers (customer_id INTEGER PRIMARY KEY, customer_name TEXT)`)
	require.NoError(t, err)

	for i := 0; i < rows; i++ {
		_, err := db.Exec(`INSERT INTO sales (product_name, amount) VALUES (?, ?)`, "Laptop Pro", 100.5+float64(i))
		require.NoError(t, err)
	}

	return &Config{Path: path, BusyTimeoutMs: DefaultBusyTimeoutMs()}
}

func TestFromMap(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    *Config
		wantErr bool
	}{
		{
			name:  "path",
			input: map[string]any{"path": "business.db"},
			want:  &Config{Path: "business.db", BusyTimeoutMs: 5000},
		},
		{
			name:  "database alias and json timeout",
			input: map[string]any{"database": "other.db", "busy_timeout_ms": float64(250)},
			want:  &Config{Path: "other.db", BusyTimeoutMs: 250},
		},
		{
			name:    "missing path",
			input:   map[string]any{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromMap(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	assert.Equal(t, "a.db?_pragma=busy_timeout(5000)", (&Config{Path: "a.db", BusyTimeoutMs: 5000}).DSN())
	assert.Equal(t, "file:a.db?cache=shared&_pragma=busy_timeout(10)", (&Config{Path: "file:a.db?cache=shared", BusyTimeoutMs: 10}).DSN())
}

func TestAdapter_TestConnection(t *testing.T) {
	cfg := newTestDatabase(t, 0)
	ctx := context.Background()

	adapter, err := NewAdapter(ctx, cfg)
	require.NoError(t, err)
	defer adapter.Close()

	assert.NoError(t, adapter.TestConnection(ctx))
}

func TestSchemaDiscoverer_DiscoverTablesAndColumns(t *testing.T) {
	cfg := newTestDatabase(t, 0)
	ctx := context.Background()

	discoverer, err := NewSchemaDiscoverer(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	defer discoverer.Close()

	tables, err := discoverer.DiscoverTables(ctx)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "sales", tables[0].TableName)
	assert.Equal(t, "customers", tables[1].TableName)
	assert.Equal(t, "main", tables[0].SchemaName)

	columns, err := discoverer.DiscoverColumns(ctx, "main", "sales")
	require.NoError(t, err)
	require.Len(t, columns, 4)

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.ColumnName
	}
	assert.Equal(t, []string{"id", "product_name", "amount", "region"}, names)

	assert.True(t, columns[0].IsPrimaryKey)
	assert.Equal(t, 1, columns[0].OrdinalPosition)
	assert.False(t, columns[1].IsNullable)
	assert.True(t, columns[2].IsNullable)
	require.NotNil(t, columns[3].DefaultValue)
	assert.Equal(t, "'North'", *columns[3].DefaultValue)
}

func TestSchemaDiscoverer_UnknownTableHasNoColumns(t *testing.T) {
	cfg := newTestDatabase(t, 0)
	ctx := context.Background()

	discoverer, err := NewSchemaDiscoverer(ctx, cfg, nil)
	require.NoError(t, err)
	defer discoverer.Close()

	columns, err := discoverer.DiscoverColumns(ctx, "main", "missing")
	require.NoError(t, err)
	assert.Empty(t, columns)
}

func TestQueryExecutor_Query(t *testing.T) {
	cfg := newTestDatabase(t, 3)
	ctx := context.Background()

	executor, err := NewQueryExecutor(ctx, cfg)
	require.NoError(t, err)
	defer executor.Close()

	result, err := executor.Query(ctx, "SELECT product_name, SUM(amount) as revenue FROM sales GROUP BY product_name ORDER BY revenue DESC", 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"product_name", "revenue"}, result.ColumnNames())
	require.Equal(t, 1, result.RowCount)
	assert.Equal(t, "Laptop Pro", result.Rows[0][0])
	assert.InDelta(t, 304.5, result.Rows[0][1], 0.0001)
	assert.False(t, result.Truncated)
}

func TestQueryExecutor_Query_EnforcesLimitWhileScanning(t *testing.T) {
	cfg := newTestDatabase(t, 5)
	ctx := context.Background()

	executor, err := NewQueryExecutor(ctx, cfg)
	require.NoError(t, err)
	defer executor.Close()

	result, err := executor.Query(ctx, "SELECT id FROM sales ORDER BY id", 2)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowCount)
	assert.True(t, result.Truncated)
	assert.Equal(t, int64(1), result.Rows[0][0])
}

func TestQueryExecutor_Query_EmptyResult(t *testing.T) {
	cfg := newTestDatabase(t, 0)
	ctx := context.Background()

	executor, err := NewQueryExecutor(ctx, cfg)
	require.NoError(t, err)
	defer executor.Close()

	result, err := executor.Query(ctx, "SELECT * FROM sales", 10)
	require.NoError(t, err)

	assert.Equal(t, 0, result.RowCount)
	assert.NotNil(t, result.Rows)
	assert.Len(t, result.Columns, 4)
}

func TestQueryExecutor_Query_ReturnsStoreErrorUnwrapped(t *testing.T) {
	cfg := newTestDatabase(t, 0)
	ctx := context.Background()

	executor, err := NewQueryExecutor(ctx, cfg)
	require.NoError(t, err)
	defer executor.Close()

	_, err = executor.Query(ctx, "SELECT * FROM missing_table", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table: missing_table")
	assert.NotContains(t, err.Error(), "failed to execute")
}

func TestQueryExecutor_QuoteIdentifier(t *testing.T) {
	e := &QueryExecutor{}
	assert.Equal(t, `"sales"`, e.QuoteIdentifier("sales"))
	assert.Equal(t, `"we""ird"`, e.QuoteIdentifier(`we"ird`))
}

func TestRegistration(t *testing.T) {
	assert.True(t, datasource.IsRegistered("sqlite"))

	cfg := newTestDatabase(t, 1)
	factory := datasource.NewDatasourceAdapterFactory(nil)

	executor, err := factory.NewQueryExecutor(context.Background(), "sqlite", map[string]any{"path": cfg.Path})
	require.NoError(t, err)
	defer executor.Close()

	result, err := executor.Query(context.Background(), "SELECT COUNT(*) AS n FROM sales", 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Rows[0][0])
}

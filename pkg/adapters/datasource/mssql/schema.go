package mssql

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// SchemaDiscoverer provides SQL Server schema discovery through the sys catalog views.
type SchemaDiscoverer struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSchemaDiscoverer creates a SQL Server schema discoverer with its own connection.
// If logger is nil, a no-op logger is used.
func NewSchemaDiscoverer(ctx context.Context, cfg *Config, logger *zap.Logger) (*SchemaDiscoverer, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	return &SchemaDiscoverer{db: db, logger: logger}, nil
}

// DiscoverTables returns all user tables (excludes system schemas).
func (s *SchemaDiscoverer) DiscoverTables(ctx context.Context) ([]datasource.TableMetadata, error) {
	query := `
	SET NOCOUNT ON;
	SELECT
	    SCHEMA_NAME(t.schema_id) AS table_schema,
	    t.name AS table_name,
	    SUM(p.rows) AS row_count
	FROM sys.tables t
	INNER JOIN sys.partitions p ON t.object_id = p.object_id
	WHERE p.index_id IN (0, 1)  -- Heap or clustered index
	  AND t.is_ms_shipped = 0   -- Exclude system tables
	GROUP BY t.schema_id, t.name
	ORDER BY table_schema, table_name
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []datasource.TableMetadata
	for rows.Next() {
		var table datasource.TableMetadata
		if err := rows.Scan(&table.SchemaName, &table.TableName, &table.RowCount); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, table)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table rows: %w", err)
	}

	s.logger.Debug("Discovered sql server tables", zap.Int("count", len(tables)))
	return tables, nil
}

// DiscoverColumns returns columns for a specific table.
func (s *SchemaDiscoverer) DiscoverColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnMetadata, error) {
	query := `
	SET NOCOUNT ON;
	SELECT
	    c.name AS column_name,
	    tp.name AS data_type,
	    CASE WHEN c.is_nullable = 1 THEN 1 ELSE 0 END AS is_nullable,
	    c.column_id AS ordinal_position,
	    CASE WHEN pk.column_id IS NOT NULL THEN 1 ELSE 0 END AS is_primary_key
	FROM sys.columns c
	INNER JOIN sys.types tp ON c.user_type_id = tp.user_type_id
	LEFT JOIN (
	    SELECT ic.object_id, ic.column_id
	    FROM sys.index_columns ic
	    INNER JOIN sys.indexes i ON ic.object_id = i.object_id AND ic.index_id = i.index_id
	    WHERE i.is_primary_key = 1
	) pk ON c.object_id = pk.object_id AND c.column_id = pk.column_id
	WHERE c.object_id = OBJECT_ID(QUOTENAME(@schema) + N'.' + QUOTENAME(@table))
	ORDER BY c.column_id
	`

	if schemaName == "" {
		schemaName = "dbo"
	}

	rows, err := s.db.QueryContext(ctx, query,
		sql.Named("schema", schemaName),
		sql.Named("table", tableName),
	)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []datasource.ColumnMetadata
	for rows.Next() {
		var col datasource.ColumnMetadata
		var isNullable, isPrimary int

		if err := rows.Scan(&col.ColumnName, &col.DataType, &isNullable, &col.OrdinalPosition, &isPrimary); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}

		col.IsNullable = isNullable == 1
		col.IsPrimaryKey = isPrimary == 1
		col.DataType = mapSQLServerType(col.DataType)

		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column rows: %w", err)
	}

	return columns, nil
}

// Close releases the database handle.
func (s *SchemaDiscoverer) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Ensure SchemaDiscoverer implements datasource.SchemaDiscoverer at compile time.
var _ datasource.SchemaDiscoverer = (*SchemaDiscoverer)(nil)

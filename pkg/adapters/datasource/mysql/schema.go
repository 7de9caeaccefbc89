package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// SchemaDiscoverer provides MySQL schema discovery via information_schema.
type SchemaDiscoverer struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSchemaDiscoverer creates a MySQL schema discoverer with its own connection.
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

// DiscoverTables returns the base tables of the connected database.
func (d *SchemaDiscoverer) DiscoverTables(ctx context.Context) ([]datasource.TableMetadata, error) {
	const query = `
		SELECT table_schema, table_name, COALESCE(table_rows, 0)
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []datasource.TableMetadata
	for rows.Next() {
		var t datasource.TableMetadata
		if err := rows.Scan(&t.SchemaName, &t.TableName, &t.RowCount); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	d.logger.Debug("Discovered mysql tables", zap.Int("count", len(tables)))
	return tables, nil
}

// DiscoverColumns returns columns for a table ordered by ordinal position.
// An empty schemaName means the connected database.
func (d *SchemaDiscoverer) DiscoverColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnMetadata, error) {
	const query = `
		SELECT
			column_name,
			data_type,
			is_nullable = 'YES',
			column_key = 'PRI',
			ordinal_position,
			column_default
		FROM information_schema.columns
		WHERE table_schema = COALESCE(NULLIF(?, ''), DATABASE())
		  AND table_name = ?
		ORDER BY ordinal_position
	`

	rows, err := d.db.QueryContext(ctx, query, schemaName, tableName)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []datasource.ColumnMetadata
	for rows.Next() {
		var (
			c          datasource.ColumnMetadata
			defaultVal sql.NullString
		)
		if err := rows.Scan(&c.ColumnName, &c.DataType, &c.IsNullable, &c.IsPrimaryKey, &c.OrdinalPosition, &defaultVal); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		if defaultVal.Valid {
			v := defaultVal.String
			c.DefaultValue = &v
		}
		columns = append(columns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// Close releases the database handle.
func (d *SchemaDiscoverer) Close() error {
	return d.db.Close()
}

// Ensure SchemaDiscoverer implements datasource.SchemaDiscoverer at compile time.
var _ datasource.SchemaDiscoverer = (*SchemaDiscoverer)(nil)

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// SchemaDiscoverer provides SQLite schema discovery through sqlite_master and table_info.
type SchemaDiscoverer struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSchemaDiscoverer opens the database file for discovery.
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

// Close releases the database handle.
func (d *SchemaDiscoverer) Close() error {
	return d.db.Close()
}

// DiscoverTables returns user tables in creation order. Internal sqlite_* tables are skipped.
func (d *SchemaDiscoverer) DiscoverTables(ctx context.Context) ([]datasource.TableMetadata, error) {
	const query = `
		SELECT name
		FROM sqlite_master
		WHERE type = 'table'
		  AND name NOT LIKE 'sqlite_%'
		ORDER BY rowid
	`

	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []datasource.TableMetadata
	for rows.Next() {
		var t datasource.TableMetadata
		if err := rows.Scan(&t.TableName); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		t.SchemaName = "main"
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	d.logger.Debug("Discovered sqlite tables", zap.Int("count", len(tables)))
	return tables, nil
}

// DiscoverColumns returns the columns of a table in declaration order.
func (d *SchemaDiscoverer) DiscoverColumns(ctx context.Context, schemaName, tableName string) ([]datasource.ColumnMetadata, error) {
	const query = `
		SELECT cid, name, type, "notnull", dflt_value, pk
		FROM pragma_table_info(?)
		ORDER BY cid
	`

	rows, err := d.db.QueryContext(ctx, query, tableName)
	if err != nil {
		return nil, fmt.Errorf("query columns: %w", err)
	}
	defer rows.Close()

	var columns []datasource.ColumnMetadata
	for rows.Next() {
		var (
			c        datasource.ColumnMetadata
			notNull  int
			pk       int
			defaultV sql.NullString
		)
		if err := rows.Scan(&c.OrdinalPosition, &c.ColumnName, &c.DataType, &notNull, &defaultV, &pk); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		c.OrdinalPosition++ // cid is zero-based
		c.IsNullable = notNull == 0
		c.IsPrimaryKey = pk > 0
		if defaultV.Valid {
			v := defaultV.String
			c.DefaultValue = &v
		}
		columns = append(columns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}

// Ensure SchemaDiscoverer implements datasource.SchemaDiscoverer at compile time.
var _ datasource.SchemaDiscoverer = (*SchemaDiscoverer)(nil)

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ekaya-inc/ekaya-bi/pkg/adapters/datasource"
)

// QueryExecutor provides PostgreSQL query execution.
type QueryExecutor struct {
	pool *pgxpool.Pool
}

// NewQueryExecutor creates a PostgreSQL query executor. The executor owns its pool.
func NewQueryExecutor(ctx context.Context, cfg *Config) (*QueryExecutor, error) {
	pool, err := openPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &QueryExecutor{pool: pool}, nil
}

// Query runs a SQL statement verbatim and returns at most limit rows.
// Server errors are returned as reported by pgx.
func (e *QueryExecutor) Query(ctx context.Context, sqlQuery string, limit int) (*datasource.QueryExecutionResult, error) {
	rows, err := e.pool.Query(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	columns := make([]datasource.ColumnInfo, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = datasource.ColumnInfo{
			Name: fd.Name,
			Type: pgTypeNameFromOID(fd.DataTypeOID),
		}
	}

	limit = datasource.EffectiveLimit(limit)
	result := &datasource.QueryExecutionResult{
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	for rows.Next() {
		if len(result.Rows) >= limit {
			result.Truncated = true
			break
		}

		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		for i := range values {
			values[i] = convertValue(values[i])
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

// convertValue maps pgx's decoded values onto the result value set.
func convertValue(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		if !val.Valid {
			return nil
		}
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case [16]byte:
		return fmt.Sprintf("%x-%x-%x-%x-%x", val[0:4], val[4:6], val[6:8], val[8:10], val[10:16])
	case pgtype.Interval, pgtype.Time:
		return fmt.Sprintf("%v", val)
	default:
		return datasource.NormalizeValue(v)
	}
}

// Close releases the pool.
func (e *QueryExecutor) Close() error {
	if e.pool != nil {
		e.pool.Close()
	}
	return nil
}

// QuoteIdentifier safely quotes a SQL identifier to prevent SQL injection.
// Uses PostgreSQL's standard double-quote quoting.
func (e *QueryExecutor) QuoteIdentifier(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

// pgTypeNameFromOID maps PostgreSQL type OIDs to human-readable type names.
// Unknown types return "UNKNOWN".
func pgTypeNameFromOID(oid uint32) string {
	switch oid {
	case pgtype.BoolOID:
		return "BOOL"
	case pgtype.ByteaOID:
		return "BYTEA"
	case pgtype.QCharOID:
		return "CHAR"
	case pgtype.Int8OID:
		return "INT8"
	case pgtype.Int2OID:
		return "INT2"
	case pgtype.Int4OID:
		return "INT4"
	case pgtype.TextOID:
		return "TEXT"
	case pgtype.JSONOID:
		return "JSON"
	case pgtype.Float4OID:
		return "FLOAT4"
	case pgtype.Float8OID:
		return "FLOAT8"
	case 790:
		return "MONEY"
	case pgtype.BPCharOID:
		return "BPCHAR"
	case pgtype.VarcharOID:
		return "VARCHAR"
	case pgtype.DateOID:
		return "DATE"
	case pgtype.TimeOID:
		return "TIME"
	case pgtype.TimestampOID:
		return "TIMESTAMP"
	case pgtype.TimestamptzOID:
		return "TIMESTAMPTZ"
	case pgtype.IntervalOID:
		return "INTERVAL"
	case pgtype.NumericOID:
		return "NUMERIC"
	case pgtype.UUIDOID:
		return "UUID"
	case pgtype.JSONBOID:
		return "JSONB"
	default:
		return "UNKNOWN"
	}
}

// Ensure QueryExecutor implements datasource.QueryExecutor at compile time.
var _ datasource.QueryExecutor = (*QueryExecutor)(nil)

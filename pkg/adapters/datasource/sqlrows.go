package datasource

import (
	"database/sql"
	"strings"
)

// ValueConverter maps a scanned driver value and its database type name to a result value.
type ValueConverter func(v any, dbType string) any

// ScanSQLRows reads at most limit rows from a database/sql result set.
// Scan and iteration errors are returned unwrapped.
func ScanSQLRows(rows *sql.Rows, limit int, convert ValueConverter) (*QueryExecutionResult, error) {
	if convert == nil {
		convert = func(v any, _ string) any { return NormalizeValue(v) }
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, err
	}

	columns := make([]ColumnInfo, len(columnTypes))
	for i, ct := range columnTypes {
		columns[i] = ColumnInfo{
			Name: ct.Name(),
			Type: strings.ToUpper(ct.DatabaseTypeName()),
		}
	}

	limit = EffectiveLimit(limit)
	result := &QueryExecutionResult{
		Columns: columns,
		Rows:    make([][]any, 0),
	}

	for rows.Next() {
		if len(result.Rows) >= limit {
			result.Truncated = true
			break
		}

		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, err
		}

		for i := range values {
			values[i] = convert(values[i], columns[i].Type)
		}
		result.Rows = append(result.Rows, values)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	result.RowCount = len(result.Rows)
	return result, nil
}

package models

import (
	"encoding/json"
	"strings"
)

// ColumnKind classifies a result column by the values it holds.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// ResultColumn describes one column of a ResultTable.
type ResultColumn struct {
	Name string     `json:"name"`
	Kind ColumnKind `json:"kind"`
	// DatabaseType is the store's type name when the driver reports one.
	DatabaseType string `json:"database_type,omitempty"`
}

// ResultTable is an immutable tabular query result.
// Rows keep the order the store returned them in.
type ResultTable struct {
	columns []ResultColumn
	rows    [][]any
}

// NewResultTable builds a table and infers each column's kind from its values.
// A column is numeric when it has at least one non-null value and every non-null
// value is a Go number; otherwise it is categorical. dbTypes may be nil.
func NewResultTable(names []string, dbTypes []string, rows [][]any) *ResultTable {
	columns := make([]ResultColumn, len(names))
	for i, name := range names {
		columns[i] = ResultColumn{Name: name, Kind: inferKind(rows, i)}
		if i < len(dbTypes) {
			columns[i].DatabaseType = dbTypes[i]
		}
	}

	copied := make([][]any, len(rows))
	for i, row := range rows {
		r := make([]any, len(names))
		copy(r, row)
		copied[i] = r
	}

	return &ResultTable{columns: columns, rows: copied}
}

func inferKind(rows [][]any, col int) ColumnKind {
	seen := false
	for _, row := range rows {
		if col >= len(row) || row[col] == nil {
			continue
		}
		if _, ok := AsFloat(row[col]); !ok {
			return KindCategorical
		}
		seen = true
	}
	if !seen {
		return KindCategorical
	}
	return KindNumeric
}

// AsFloat converts Go numeric values to float64. Booleans and strings are not numeric.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// Columns returns the column descriptors in order.
func (t *ResultTable) Columns() []ResultColumn {
	out := make([]ResultColumn, len(t.columns))
	copy(out, t.columns)
	return out
}

// ColumnNames returns the column names in order.
func (t *ResultTable) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// ColumnIndex returns the position of the named column, or -1.
func (t *ResultTable) ColumnIndex(name string) int {
	for i, c := range t.columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Rows returns the row values. Callers must not modify them.
func (t *ResultTable) Rows() [][]any {
	return t.rows
}

// RowCount returns the number of rows.
func (t *ResultTable) RowCount() int {
	return len(t.rows)
}

// ColumnCount returns the number of columns.
func (t *ResultTable) ColumnCount() int {
	return len(t.columns)
}

// IsEmpty reports whether the table has no rows.
func (t *ResultTable) IsEmpty() bool {
	return len(t.rows) == 0
}

// Value returns the cell at row r, column c.
func (t *ResultTable) Value(r, c int) any {
	return t.rows[r][c]
}

// NumericColumns returns the indexes of numeric columns in order.
func (t *ResultTable) NumericColumns() []int {
	return t.columnsOfKind(KindNumeric)
}

// CategoricalColumns returns the indexes of non-numeric columns in order.
func (t *ResultTable) CategoricalColumns() []int {
	return t.columnsOfKind(KindCategorical)
}

func (t *ResultTable) columnsOfKind(kind ColumnKind) []int {
	var idx []int
	for i, c := range t.columns {
		if c.Kind == kind {
			idx = append(idx, i)
		}
	}
	return idx
}

// Float64s returns the non-null values of a numeric column.
func (t *ResultTable) Float64s(col int) []float64 {
	values := make([]float64, 0, len(t.rows))
	for _, row := range t.rows {
		if f, ok := AsFloat(row[col]); ok {
			values = append(values, f)
		}
	}
	return values
}

// ColumnsMatching returns the indexes of columns whose lower-cased name contains any needle.
func (t *ResultTable) ColumnsMatching(needles ...string) []int {
	var idx []int
	for i, c := range t.columns {
		name := strings.ToLower(c.Name)
		for _, n := range needles {
			if strings.Contains(name, n) {
				idx = append(idx, i)
				break
			}
		}
	}
	return idx
}

type resultTableJSON struct {
	Columns  []ResultColumn `json:"columns"`
	Rows     [][]any        `json:"rows"`
	RowCount int            `json:"row_count"`
}

// MarshalJSON encodes the table as columns plus positional rows.
func (t *ResultTable) MarshalJSON() ([]byte, error) {
	rows := t.rows
	if rows == nil {
		rows = [][]any{}
	}
	return json.Marshal(resultTableJSON{
		Columns:  t.columns,
		Rows:     rows,
		RowCount: len(t.rows),
	})
}

// UnmarshalJSON decodes the positional form produced by MarshalJSON.
// JSON numbers decode as float64 so numeric columns keep their kind.
func (t *ResultTable) UnmarshalJSON(data []byte) error {
	var raw resultTableJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.columns = raw.Columns
	t.rows = raw.Rows
	if t.rows == nil {
		t.rows = [][]any{}
	}
	return nil
}

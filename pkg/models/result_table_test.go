package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResultTable_ColumnKinds(t *testing.T) {
	tests := []struct {
		name   string
		values []any
		want   ColumnKind
	}{
		{name: "floats", values: []any{1.5, 2.0}, want: KindNumeric},
		{name: "mixed ints", values: []any{int64(1), int32(2), uint8(3)}, want: KindNumeric},
		{name: "numbers with nulls", values: []any{nil, 4.0, nil}, want: KindNumeric},
		{name: "strings", values: []any{"a", "b"}, want: KindCategorical},
		{name: "number and string", values: []any{1.0, "2"}, want: KindCategorical},
		{name: "all null", values: []any{nil, nil}, want: KindCategorical},
		{name: "booleans", values: []any{true, false}, want: KindCategorical},
		{name: "no rows", values: nil, want: KindCategorical},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := make([][]any, len(tt.values))
			for i, v := range tt.values {
				rows[i] = []any{v}
			}
			table := NewResultTable([]string{"c"}, nil, rows)
			if got := table.Columns()[0].Kind; got != tt.want {
				t.Errorf("kind = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResultTable_Accessors(t *testing.T) {
	rows := [][]any{
		{"Laptop", 1200.0, int64(3)},
		{"Mouse", 25.5, nil},
	}
	table := NewResultTable([]string{"product_name", "revenue", "units"}, []string{"TEXT", "REAL", "INTEGER"}, rows)

	assert.Equal(t, []string{"product_name", "revenue", "units"}, table.ColumnNames())
	assert.Equal(t, 2, table.RowCount())
	assert.Equal(t, 3, table.ColumnCount())
	assert.False(t, table.IsEmpty())
	assert.Equal(t, 1, table.ColumnIndex("revenue"))
	assert.Equal(t, -1, table.ColumnIndex("missing"))
	assert.Equal(t, []int{1, 2}, table.NumericColumns())
	assert.Equal(t, []int{0}, table.CategoricalColumns())
	assert.Equal(t, []float64{3}, table.Float64s(2))
	assert.Equal(t, []int{0}, table.ColumnsMatching("name", "customer"))
	assert.Equal(t, "REAL", table.Columns()[1].DatabaseType)

	// The table keeps its own copy of the rows.
	rows[0][0] = "changed"
	assert.Equal(t, "Laptop", table.Value(0, 0))
}

func TestResultTable_JSON(t *testing.T) {
	table := NewResultTable([]string{"month", "monthly_sales"}, nil, [][]any{{"2025-01", 10.5}})

	raw, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"columns":[{"name":"month","kind":"categorical"},{"name":"monthly_sales","kind":"numeric"}],"rows":[["2025-01",10.5]],"row_count":1}`,
		string(raw))

	var decoded ResultTable
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, table.Columns(), decoded.Columns())
	assert.Equal(t, 10.5, decoded.Value(0, 1))

	empty, err := json.Marshal(NewResultTable([]string{"x"}, nil, nil))
	require.NoError(t, err)
	assert.Contains(t, string(empty), `"rows":[]`)
}

package models

import "encoding/json"

// SchemaTable is one table of a schema snapshot with its columns in ordinal order.
type SchemaTable struct {
	TableName string   `json:"table_name"`
	Columns   []string `json:"columns"`
}

// Schema maps table names to ordered column names.
// Table order follows the store's discovery order. Table names are unique within one snapshot.
type Schema struct {
	tables []SchemaTable
	index  map[string]int
}

// NewSchema returns an empty schema snapshot.
func NewSchema() *Schema {
	return &Schema{index: make(map[string]int)}
}

// AddTable appends a table. A repeated table name replaces the earlier column list in place.
func (s *Schema) AddTable(name string, columns []string) {
	cols := make([]string, len(columns))
	copy(cols, columns)

	if i, ok := s.index[name]; ok {
		s.tables[i].Columns = cols
		return
	}
	s.index[name] = len(s.tables)
	s.tables = append(s.tables, SchemaTable{TableName: name, Columns: cols})
}

// Tables returns table names in discovery order.
func (s *Schema) Tables() []string {
	names := make([]string, len(s.tables))
	for i, t := range s.tables {
		names[i] = t.TableName
	}
	return names
}

// Columns returns the ordered columns of a table and whether the table exists.
func (s *Schema) Columns(table string) ([]string, bool) {
	i, ok := s.index[table]
	if !ok {
		return nil, false
	}
	return s.tables[i].Columns, true
}

// HasTable reports whether the snapshot contains the table.
func (s *Schema) HasTable(table string) bool {
	_, ok := s.index[table]
	return ok
}

// Len returns the number of tables.
func (s *Schema) Len() int {
	return len(s.tables)
}

// Entries returns the tables with their columns in discovery order.
func (s *Schema) Entries() []SchemaTable {
	out := make([]SchemaTable, len(s.tables))
	copy(out, s.tables)
	return out
}

// MarshalJSON encodes the schema as an ordered list of tables.
func (s *Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Entries())
}

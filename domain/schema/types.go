// Package schema defines the inferred per-column semantic metadata of a
// dataset: one Column entry per input column, in input order.
package schema

import "encoding/json"

// ColumnType is the inferred semantic type of a column
type ColumnType string

const (
	TypeBoolean     ColumnType = "boolean"
	TypeNumeric     ColumnType = "numeric"
	TypeDatetime    ColumnType = "datetime"
	TypeCategorical ColumnType = "categorical"
	TypeText        ColumnType = "text"
)

// Cardinality coarsely classifies distinct-value density
type Cardinality string

const (
	CardinalityHigh Cardinality = "high"
	CardinalityLow  Cardinality = "low"
)

// Column describes one dataset column
type Column struct {
	Name        string      `json:"name"`
	Type        ColumnType  `json:"type"`
	Nullable    bool        `json:"nullable"`
	Cardinality Cardinality `json:"cardinality"`
}

// Schema is the ordered per-column metadata for one dataset. Encoding as an
// ordered array keeps column order stable across persist/reload, which the
// chart recommender depends on.
type Schema struct {
	Columns []Column
}

// Get looks up a column by name
func (s *Schema) Get(name string) (Column, bool) {
	for _, c := range s.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// ColumnsOfType returns the names of all columns with the given type, in
// schema order
func (s *Schema) ColumnsOfType(t ColumnType) []string {
	var names []string
	for _, c := range s.Columns {
		if c.Type == t {
			names = append(names, c.Name)
		}
	}
	return names
}

func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Columns)
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &s.Columns)
}

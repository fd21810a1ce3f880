package dataset

import (
	"strconv"
	"time"
)

// Kind is the runtime type of a single cell value
type Kind uint8

const (
	KindMissing Kind = iota
	KindBool
	KindNumber
	KindString
	KindTime
)

// Value is one typed cell. The loader unifies each column to a single kind,
// so within a column only KindMissing mixes with the column's kind.
type Value struct {
	Kind   Kind
	Bool   bool
	Number float64
	Str    string
	Time   time.Time
}

func Missing() Value              { return Value{Kind: KindMissing} }
func BoolValue(b bool) Value      { return Value{Kind: KindBool, Bool: b} }
func NumberValue(f float64) Value { return Value{Kind: KindNumber, Number: f} }
func StringValue(s string) Value  { return Value{Kind: KindString, Str: s} }
func TimeValue(t time.Time) Value { return Value{Kind: KindTime, Time: t} }

// IsMissing reports whether the cell holds no value
func (v Value) IsMissing() bool {
	return v.Kind == KindMissing
}

// Interface returns the native Go value for serialization
func (v Value) Interface() interface{} {
	switch v.Kind {
	case KindBool:
		return v.Bool
	case KindNumber:
		return v.Number
	case KindString:
		return v.Str
	case KindTime:
		return v.Time
	default:
		return nil
	}
}

// Key returns a distinct-count and group-by key. Keys are unique per value
// within a column because columns are kind-uniform.
func (v Value) Key() string {
	switch v.Kind {
	case KindBool:
		return strconv.FormatBool(v.Bool)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindString:
		return v.Str
	case KindTime:
		return v.Time.Format(time.RFC3339Nano)
	default:
		return ""
	}
}

// Less orders values of the same kind ascending: numbers numerically, times
// chronologically, everything else lexicographically by key.
func (v Value) Less(other Value) bool {
	switch {
	case v.Kind == KindNumber && other.Kind == KindNumber:
		return v.Number < other.Number
	case v.Kind == KindTime && other.Kind == KindTime:
		return v.Time.Before(other.Time)
	default:
		return v.Key() < other.Key()
	}
}

// Table is an ordered tabular dataset with named columns
type Table struct {
	Columns []string
	Rows    [][]Value
}

// NumRows returns the number of data rows
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumColumns returns the number of columns
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// ColumnIndex finds the position of a named column
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// ColumnValues collects the cells of column i in row order
func (t *Table) ColumnValues(i int) []Value {
	values := make([]Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		if i < len(row) {
			values = append(values, row[i])
		} else {
			values = append(values, Missing())
		}
	}
	return values
}

// ColumnKind returns the unified kind of column i, ignoring missing cells.
// A column with no non-missing cells reports KindNumber, matching dataframe
// semantics where an all-null column loads as a float column of NaNs.
func (t *Table) ColumnKind(i int) Kind {
	for _, row := range t.Rows {
		if i < len(row) && row[i].Kind != KindMissing {
			return row[i].Kind
		}
	}
	return KindNumber
}

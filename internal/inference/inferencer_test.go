package inference

import (
	"fmt"
	"testing"
	"time"

	"autodash/domain/dataset"
	"autodash/domain/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleColumnTable(name string, values []dataset.Value) *dataset.Table {
	t := &dataset.Table{Columns: []string{name}}
	for _, v := range values {
		t.Rows = append(t.Rows, []dataset.Value{v})
	}
	return t
}

func stringColumn(values ...string) []dataset.Value {
	out := make([]dataset.Value, len(values))
	for i, s := range values {
		out[i] = dataset.StringValue(s)
	}
	return out
}

func TestInferNumericColumn(t *testing.T) {
	values := []dataset.Value{
		dataset.NumberValue(1.5),
		dataset.NumberValue(2),
		dataset.NumberValue(3),
	}

	s := NewInferencer().Infer(singleColumnTable("amount", values))

	require.Len(t, s.Columns, 1)
	assert.Equal(t, schema.TypeNumeric, s.Columns[0].Type)
	assert.False(t, s.Columns[0].Nullable)
}

func TestInferBooleanBeatsNumeric(t *testing.T) {
	values := []dataset.Value{
		dataset.BoolValue(true),
		dataset.BoolValue(false),
		dataset.BoolValue(true),
	}

	s := NewInferencer().Infer(singleColumnTable("active", values))

	require.Len(t, s.Columns, 1)
	assert.Equal(t, schema.TypeBoolean, s.Columns[0].Type)
}

func TestInferNativeTimeColumn(t *testing.T) {
	values := []dataset.Value{
		dataset.TimeValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		dataset.TimeValue(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
	}

	s := NewInferencer().Infer(singleColumnTable("created", values))

	assert.Equal(t, schema.TypeDatetime, s.Columns[0].Type)
}

func TestInferDatetimeStringsNeedFiveParses(t *testing.T) {
	// 5 clean date strings among 15 non-dates clears the threshold
	values := stringColumn(
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
	)
	for i := 0; i < 15; i++ {
		values = append(values, dataset.StringValue(fmt.Sprintf("item-%d", i)))
	}

	s := NewInferencer().Infer(singleColumnTable("when", values))
	assert.Equal(t, schema.TypeDatetime, s.Columns[0].Type)

	// 4 parses falls short; 20 distinct values over 20 rows makes it text
	values = stringColumn(
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
	)
	for i := 0; i < 16; i++ {
		values = append(values, dataset.StringValue(fmt.Sprintf("item-%d", i)))
	}

	s = NewInferencer().Infer(singleColumnTable("when", values))
	assert.Equal(t, schema.TypeText, s.Columns[0].Type)
}

func TestInferDatetimeSamplesFirstTwentyValues(t *testing.T) {
	// Dates beyond the 20-value sample window are never examined
	values := stringColumn()
	for i := 0; i < 20; i++ {
		values = append(values, dataset.StringValue(fmt.Sprintf("item-%d", i)))
	}
	for i := 0; i < 10; i++ {
		values = append(values, dataset.StringValue(fmt.Sprintf("2024-01-%02d", i+1)))
	}

	s := NewInferencer().Infer(singleColumnTable("when", values))
	assert.NotEqual(t, schema.TypeDatetime, s.Columns[0].Type)
}

func TestInferCategoricalBoundaryIsStrict(t *testing.T) {
	// 2 distinct values over 10 rows is exactly 0.2: not categorical
	values := stringColumn("a", "b", "a", "b", "a", "b", "a", "b", "a", "b")
	s := NewInferencer().Infer(singleColumnTable("label", values))
	assert.Equal(t, schema.TypeText, s.Columns[0].Type)

	// one more row pushes the ratio under 0.2
	values = append(values, dataset.StringValue("a"))
	s = NewInferencer().Infer(singleColumnTable("label", values))
	assert.Equal(t, schema.TypeCategorical, s.Columns[0].Type)
}

func TestInferCardinality(t *testing.T) {
	// 3 distinct over 4 rows is above 0.5
	high := stringColumn("a", "b", "c", "a")
	s := NewInferencer().Infer(singleColumnTable("code", high))
	assert.Equal(t, schema.CardinalityHigh, s.Columns[0].Cardinality)

	// 2 distinct over 4 rows is exactly 0.5: not high
	low := stringColumn("a", "b", "a", "b")
	s = NewInferencer().Infer(singleColumnTable("code", low))
	assert.Equal(t, schema.CardinalityLow, s.Columns[0].Cardinality)
}

func TestInferNullableAndMissingDenominator(t *testing.T) {
	values := []dataset.Value{
		dataset.StringValue("a"),
		dataset.Missing(),
		dataset.StringValue("a"),
		dataset.StringValue("a"),
	}

	s := NewInferencer().Infer(singleColumnTable("label", values))

	assert.True(t, s.Columns[0].Nullable)
	// distinct ratio uses total rows, not non-missing rows
	assert.Equal(t, schema.CardinalityLow, s.Columns[0].Cardinality)
}

func TestInferAllMissingColumnIsNumeric(t *testing.T) {
	values := []dataset.Value{dataset.Missing(), dataset.Missing()}

	s := NewInferencer().Infer(singleColumnTable("empty", values))

	assert.Equal(t, schema.TypeNumeric, s.Columns[0].Type)
	assert.True(t, s.Columns[0].Nullable)
}

func TestInferIsDeterministic(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"label", "amount"},
		Rows: [][]dataset.Value{
			{dataset.StringValue("a"), dataset.NumberValue(1)},
			{dataset.StringValue("b"), dataset.NumberValue(2)},
			{dataset.StringValue("a"), dataset.Missing()},
		},
	}

	in := NewInferencer()
	first := in.Infer(table)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, in.Infer(table))
	}
}

func TestInferPreservesColumnOrder(t *testing.T) {
	table := &dataset.Table{
		Columns: []string{"z", "a", "m"},
		Rows: [][]dataset.Value{
			{dataset.NumberValue(1), dataset.StringValue("x"), dataset.BoolValue(true)},
		},
	}

	s := NewInferencer().Infer(table)

	require.Len(t, s.Columns, 3)
	assert.Equal(t, "z", s.Columns[0].Name)
	assert.Equal(t, "a", s.Columns[1].Name)
	assert.Equal(t, "m", s.Columns[2].Name)
}

// Package inference classifies each dataset column's semantic type and
// cardinality from its raw values. Inference is deterministic for a fixed
// input and has no side effects.
package inference

import (
	"autodash/domain/dataset"
	"autodash/domain/schema"
)

// Type precedence is strict: boolean, numeric, datetime, categorical, text.
// Datetime coercion samples at most the first 20 non-missing values and
// requires at least 5 clean parses.
const (
	datetimeSampleSize = 20
	datetimeMinParsed  = 5

	highCardinalityRatio = 0.5
	categoricalRatio     = 0.2
)

// Inferencer derives a Schema from a raw table
type Inferencer struct{}

// NewInferencer creates a schema inferencer
func NewInferencer() *Inferencer {
	return &Inferencer{}
}

// Infer classifies every column independently, in input column order
func (in *Inferencer) Infer(t *dataset.Table) *schema.Schema {
	s := &schema.Schema{Columns: make([]schema.Column, 0, t.NumColumns())}
	for i, name := range t.Columns {
		s.Columns = append(s.Columns, in.inferColumn(name, t.ColumnValues(i), t.NumRows()))
	}
	return s
}

func (in *Inferencer) inferColumn(name string, values []dataset.Value, rowCount int) schema.Column {
	nonMissing := make([]dataset.Value, 0, len(values))
	for _, v := range values {
		if !v.IsMissing() {
			nonMissing = append(nonMissing, v)
		}
	}

	// Distinct ratio uses the total row count, floored at 1 for empty tables
	denom := rowCount
	if denom < 1 {
		denom = 1
	}
	ratio := float64(countDistinct(nonMissing)) / float64(denom)

	cardinality := schema.CardinalityLow
	if ratio > highCardinalityRatio {
		cardinality = schema.CardinalityHigh
	}

	return schema.Column{
		Name:        name,
		Type:        in.inferType(nonMissing, ratio),
		Nullable:    len(nonMissing) < len(values),
		Cardinality: cardinality,
	}
}

func (in *Inferencer) inferType(nonMissing []dataset.Value, distinctRatio float64) schema.ColumnType {
	// A column with no observed values loads as a float column of nulls,
	// so it classifies as numeric.
	if len(nonMissing) == 0 {
		return schema.TypeNumeric
	}

	if allOfKind(nonMissing, dataset.KindBool) {
		return schema.TypeBoolean
	}
	if allOfKind(nonMissing, dataset.KindNumber) {
		return schema.TypeNumeric
	}
	if allOfKind(nonMissing, dataset.KindTime) {
		return schema.TypeDatetime
	}

	if in.looksLikeDatetime(nonMissing) {
		return schema.TypeDatetime
	}

	if distinctRatio < categoricalRatio {
		return schema.TypeCategorical
	}
	return schema.TypeText
}

// looksLikeDatetime samples the first values in row order and counts clean
// parses. Malformed candidates (date-shaped but unparseable) are counted as
// failures, not swallowed into successes.
func (in *Inferencer) looksLikeDatetime(nonMissing []dataset.Value) bool {
	sample := nonMissing
	if len(sample) > datetimeSampleSize {
		sample = sample[:datetimeSampleSize]
	}

	parsed := 0
	for _, v := range sample {
		if v.Kind != dataset.KindString {
			continue
		}
		if _, outcome := ParseDatetime(v.Str); outcome == ParseOK {
			parsed++
		}
	}
	return parsed >= datetimeMinParsed
}

func allOfKind(values []dataset.Value, kind dataset.Kind) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v.Kind != kind {
			return false
		}
	}
	return true
}

func countDistinct(values []dataset.Value) int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v.Key()] = struct{}{}
	}
	return len(seen)
}

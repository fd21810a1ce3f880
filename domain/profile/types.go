// Package profile defines the computed per-column statistical summary of a
// dataset. Column entries are kept in input column order; encoding as ordered
// arrays keeps that order stable across persist/reload, which KPI and insight
// generation depend on.
package profile

import (
	"encoding/json"
	"math"
)

// Float is a float64 that serializes NaN and ±Inf as JSON null. The sample
// standard deviation of a single-value series is NaN, which encoding/json
// refuses to emit.
type Float float64

func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

func (f *Float) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = Float(math.NaN())
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Float(v)
	return nil
}

// Trend is the direction of change between the first and second half of a
// numeric column, in row order
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
	TrendFlat Trend = "flat"
)

// NumericStats summarizes a numeric column with at least one non-missing value
type NumericStats struct {
	Mean     float64   `json:"mean"`
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	Std      Float     `json:"std"`
	Trend    Trend     `json:"trend"`
	Outliers []float64 `json:"outliers"`
}

// ValueCount is one value and its frequency
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// CategoricalStats summarizes a non-numeric, non-datetime column. TopValues
// holds at most five entries ranked by descending count, ties broken by
// first-encountered order.
type CategoricalStats struct {
	UniqueCount int          `json:"unique_count"`
	TopValues   []ValueCount `json:"top_values"`
}

// MissingStats is present only for columns with at least one missing value
type MissingStats struct {
	MissingRatio float64 `json:"missing_ratio"`
}

// DistributionStats describes the shape of a numeric column
type DistributionStats struct {
	Skewness Float   `json:"skewness"`
	Kurtosis Float   `json:"kurtosis"`
	Normal   bool    `json:"normal"`
	PValue   float64 `json:"p_value"`
}

// NumericColumn pairs a column name with its numeric stats
type NumericColumn struct {
	Column string `json:"column"`
	NumericStats
}

// CategoricalColumn pairs a column name with its categorical stats
type CategoricalColumn struct {
	Column string `json:"column"`
	CategoricalStats
}

// MissingColumn pairs a column name with its missing-value stats
type MissingColumn struct {
	Column string `json:"column"`
	MissingStats
}

// DistributionColumn pairs a column name with its distribution stats
type DistributionColumn struct {
	Column string `json:"column"`
	DistributionStats
}

// Profile is the complete statistical profile of one dataset
type Profile struct {
	RowCount     int                  `json:"row_count"`
	Numeric      []NumericColumn      `json:"numeric"`
	Categorical  []CategoricalColumn  `json:"categorical"`
	Missing      []MissingColumn      `json:"missing"`
	Distribution []DistributionColumn `json:"distribution,omitempty"`
}

// NumericByName looks up numeric stats for a column
func (p *Profile) NumericByName(column string) (NumericStats, bool) {
	for _, c := range p.Numeric {
		if c.Column == column {
			return c.NumericStats, true
		}
	}
	return NumericStats{}, false
}

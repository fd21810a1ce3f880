// Package charts proposes chart specifications from an inferred schema.
// Recommendation applies fixed heuristics over column type pairings; it does
// not attempt any statistical ranking.
package charts

import (
	"autodash/domain/dashboard"
	"autodash/domain/schema"
)

// MaxCharts caps the concatenated candidate list, not each category:
// later categories are dropped entirely once earlier ones fill the quota.
const MaxCharts = 6

// Recommender generates ordered chart candidates from a schema
type Recommender struct{}

// NewRecommender creates a chart recommender
func NewRecommender() *Recommender {
	return &Recommender{}
}

// Recommend concatenates time-series, categorical-comparison, and
// correlation candidates in that fixed order, truncated to MaxCharts.
// Text and boolean columns are excluded from chart generation.
func (r *Recommender) Recommend(s *schema.Schema) []dashboard.ChartSpec {
	specs := []dashboard.ChartSpec{}
	specs = append(specs, r.timeSeriesCharts(s)...)
	specs = append(specs, r.categoricalCharts(s)...)
	specs = append(specs, r.scatterCharts(s)...)

	if len(specs) > MaxCharts {
		specs = specs[:MaxCharts]
	}
	return specs
}

func (r *Recommender) timeSeriesCharts(s *schema.Schema) []dashboard.ChartSpec {
	var specs []dashboard.ChartSpec
	for _, dt := range s.ColumnsOfType(schema.TypeDatetime) {
		for _, num := range s.ColumnsOfType(schema.TypeNumeric) {
			specs = append(specs, dashboard.ChartSpec{
				ChartType:   dashboard.ChartLine,
				X:           dt,
				Y:           num,
				Aggregation: dashboard.AggregationNone,
				Reason:      "Time series numeric trend",
			})
		}
	}
	return specs
}

func (r *Recommender) categoricalCharts(s *schema.Schema) []dashboard.ChartSpec {
	var specs []dashboard.ChartSpec
	for _, cat := range s.ColumnsOfType(schema.TypeCategorical) {
		for _, num := range s.ColumnsOfType(schema.TypeNumeric) {
			specs = append(specs, dashboard.ChartSpec{
				ChartType:   dashboard.ChartBar,
				X:           cat,
				Y:           num,
				Aggregation: dashboard.AggregationMean,
				Reason:      "Category comparison",
			})
		}
	}
	return specs
}

func (r *Recommender) scatterCharts(s *schema.Schema) []dashboard.ChartSpec {
	numeric := s.ColumnsOfType(schema.TypeNumeric)

	var specs []dashboard.ChartSpec
	for i := 0; i < len(numeric); i++ {
		for j := i + 1; j < len(numeric); j++ {
			specs = append(specs, dashboard.ChartSpec{
				ChartType:   dashboard.ChartScatter,
				X:           numeric[i],
				Y:           numeric[j],
				Aggregation: dashboard.AggregationNone,
				Reason:      "Correlation analysis",
			})
		}
	}
	return specs
}

// Package insights derives textual observations from a dataset's profile,
// schema, and KPIs, and assembles them into a persisted insight report.
package insights

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"autodash/domain/dashboard"
	"autodash/domain/insight"
	"autodash/domain/profile"
	"autodash/domain/schema"
)

const (
	missingRatioThreshold = 0.2
	smallDatasetRows      = 100
)

// Engine generates insight statements from derived artifacts
type Engine struct{}

// NewEngine creates an insight engine
func NewEngine() *Engine {
	return &Engine{}
}

// Generate concatenates trend, anomaly, data-quality, and KPI-derived
// insights in that fixed order.
func (e *Engine) Generate(p *profile.Profile, s *schema.Schema, kpis []dashboard.KPI) []insight.Insight {
	insights := []insight.Insight{}
	insights = append(insights, e.detectTrends(p)...)
	insights = append(insights, e.detectAnomalies(p)...)
	insights = append(insights, e.dataQualityChecks(p, s)...)
	insights = append(insights, e.kpiInsights(kpis)...)
	return insights
}

func (e *Engine) detectTrends(p *profile.Profile) []insight.Insight {
	var insights []insight.Insight
	for _, col := range p.Numeric {
		switch col.Trend {
		case profile.TrendUp:
			insights = append(insights, insight.Insight{
				Type:    insight.TypeTrend,
				Message: fmt.Sprintf("%s shows an upward trend over time", col.Column),
			})
		case profile.TrendDown:
			insights = append(insights, insight.Insight{
				Type:    insight.TypeTrend,
				Message: fmt.Sprintf("%s shows a downward trend over time", col.Column),
			})
		}
	}
	return insights
}

func (e *Engine) detectAnomalies(p *profile.Profile) []insight.Insight {
	var insights []insight.Insight
	for _, col := range p.Numeric {
		if len(col.Outliers) > 0 {
			insights = append(insights, insight.Insight{
				Type:    insight.TypeAnomaly,
				Message: fmt.Sprintf("%d anomalies detected in %s", len(col.Outliers), col.Column),
			})
		}
	}
	return insights
}

func (e *Engine) dataQualityChecks(p *profile.Profile, s *schema.Schema) []insight.Insight {
	var insights []insight.Insight

	for _, col := range p.Missing {
		if col.MissingRatio > missingRatioThreshold {
			insights = append(insights, insight.Insight{
				Type: insight.TypeDataQuality,
				Message: fmt.Sprintf("Column '%s' has %d%% missing values",
					col.Column, int(math.Round(col.MissingRatio*100))),
			})
		}
	}

	for _, col := range s.Columns {
		if col.Cardinality == schema.CardinalityHigh {
			insights = append(insights, insight.Insight{
				Type:    insight.TypeDataDistribution,
				Message: fmt.Sprintf("Column '%s' has high cardinality", col.Name),
			})
		}
	}

	return insights
}

func (e *Engine) kpiInsights(kpis []dashboard.KPI) []insight.Insight {
	var insights []insight.Insight

	for _, kpi := range kpis {
		if kpi.Name == "row_count" && kpi.Value < smallDatasetRows {
			insights = append(insights, insight.Insight{
				Type:    insight.TypeDataVolume,
				Message: "Dataset has a relatively small number of records",
			})
		}

		if strings.HasSuffix(kpi.Name, "_max") {
			insights = append(insights, insight.Insight{
				Type:    insight.TypeKPI,
				Message: fmt.Sprintf("%s is %s", kpi.Metric, formatValue(kpi.Value)),
			})
		}
	}

	return insights
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

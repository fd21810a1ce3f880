// Package kpi derives headline metric widgets from a dataset profile
package kpi

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"autodash/domain/dashboard"
	"autodash/domain/profile"
)

// Engine generates KPI values from a profile. Widget ids are assigned later
// by the dashboard assembler.
type Engine struct{}

// NewEngine creates a KPI engine
func NewEngine() *Engine {
	return &Engine{}
}

// Generate emits the row-count KPI followed by a mean and a max KPI per
// numeric column, in profile order. Mean values are rounded to 2 decimal
// places; max values are left unrounded.
func (e *Engine) Generate(p *profile.Profile) []dashboard.KPI {
	kpis := []dashboard.KPI{
		{
			Name:   "row_count",
			Metric: "Total Records",
			Value:  float64(p.RowCount),
			Format: "number",
		},
	}

	for _, col := range p.Numeric {
		title := titleCase(col.Column)
		kpis = append(kpis,
			dashboard.KPI{
				Name:   fmt.Sprintf("%s_mean", col.Column),
				Metric: "Average " + title,
				Value:  round2(col.Mean),
				Format: "number",
			},
			dashboard.KPI{
				Name:   fmt.Sprintf("%s_max", col.Column),
				Metric: "Max " + title,
				Value:  col.Max,
				Format: "number",
			},
		)
	}

	return kpis
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// titleCase turns a snake_case column name into a display title:
// "total_revenue" becomes "Total Revenue".
func titleCase(column string) string {
	words := strings.Fields(strings.ReplaceAll(column, "_", " "))
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

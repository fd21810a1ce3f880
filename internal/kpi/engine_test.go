package kpi

import (
	"testing"

	"autodash/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRowCountFirst(t *testing.T) {
	p := &profile.Profile{RowCount: 1234}

	kpis := NewEngine().Generate(p)

	require.Len(t, kpis, 1)
	assert.Equal(t, "row_count", kpis[0].Name)
	assert.Equal(t, "Total Records", kpis[0].Metric)
	assert.Equal(t, 1234.0, kpis[0].Value)
	assert.Equal(t, "number", kpis[0].Format)
}

func TestGenerateMeanRoundedMaxUnrounded(t *testing.T) {
	p := &profile.Profile{
		RowCount: 3,
		Numeric: []profile.NumericColumn{
			{
				Column: "total_revenue",
				NumericStats: profile.NumericStats{
					Mean: 5.0 / 3.0,
					Max:  99.999,
				},
			},
		},
	}

	kpis := NewEngine().Generate(p)

	require.Len(t, kpis, 3)

	assert.Equal(t, "total_revenue_mean", kpis[1].Name)
	assert.Equal(t, "Average Total Revenue", kpis[1].Metric)
	assert.Equal(t, 1.67, kpis[1].Value)

	assert.Equal(t, "total_revenue_max", kpis[2].Name)
	assert.Equal(t, "Max Total Revenue", kpis[2].Metric)
	assert.Equal(t, 99.999, kpis[2].Value)
}

func TestGenerateFollowsProfileColumnOrder(t *testing.T) {
	p := &profile.Profile{
		RowCount: 1,
		Numeric: []profile.NumericColumn{
			{Column: "zeta"},
			{Column: "alpha"},
		},
	}

	kpis := NewEngine().Generate(p)

	require.Len(t, kpis, 5)
	assert.Equal(t, "zeta_mean", kpis[1].Name)
	assert.Equal(t, "zeta_max", kpis[2].Name)
	assert.Equal(t, "alpha_mean", kpis[3].Name)
	assert.Equal(t, "alpha_max", kpis[4].Name)
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Total Revenue", titleCase("total_revenue"))
	assert.Equal(t, "Amount", titleCase("AMOUNT"))
	assert.Equal(t, "Unit Price Usd", titleCase("unit_price_usd"))
}

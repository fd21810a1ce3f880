package artifacts

import (
	"context"
	"math"
	"testing"

	"autodash/domain/core"
	"autodash/domain/dashboard"
	"autodash/domain/insight"
	"autodash/domain/profile"
	"autodash/domain/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *FileStore {
	t.Helper()
	dir := t.TempDir()
	return NewFileStore(dir+"/datasets", dir+"/dashboards")
}

func TestSchemaRoundTripPreservesColumnOrder(t *testing.T) {
	store := newStore(t)
	id := core.DatasetID(core.NewID())
	ctx := context.Background()

	saved := &schema.Schema{Columns: []schema.Column{
		{Name: "zeta", Type: schema.TypeNumeric, Cardinality: schema.CardinalityHigh},
		{Name: "alpha", Type: schema.TypeCategorical, Nullable: true, Cardinality: schema.CardinalityLow},
	}}
	require.NoError(t, store.SaveSchema(ctx, id, saved))

	loaded, err := store.LoadSchema(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestProfileRoundTripKeepsNaNStdAsNaN(t *testing.T) {
	store := newStore(t)
	id := core.DatasetID(core.NewID())
	ctx := context.Background()

	saved := &profile.Profile{
		RowCount: 1,
		Numeric: []profile.NumericColumn{
			{
				Column: "v",
				NumericStats: profile.NumericStats{
					Mean: 42, Min: 42, Max: 42,
					Std:      profile.Float(math.NaN()),
					Trend:    profile.TrendFlat,
					Outliers: []float64{},
				},
			},
		},
		Categorical: []profile.CategoricalColumn{},
		Missing:     []profile.MissingColumn{},
	}
	require.NoError(t, store.SaveProfile(ctx, id, saved))

	loaded, err := store.LoadProfile(ctx, id)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(float64(loaded.Numeric[0].Std)))
	assert.Equal(t, 42.0, loaded.Numeric[0].Mean)
}

func TestInsightsRoundTrip(t *testing.T) {
	store := newStore(t)
	id := core.DatasetID(core.NewID())
	ctx := context.Background()

	summary := "All good."
	saved := &insight.Report{
		DatasetID: id,
		Insights: []insight.Insight{
			{Type: insight.TypeTrend, Message: "revenue shows an upward trend over time"},
		},
		Summary:     &summary,
		GeneratedAt: core.Now(),
	}
	require.NoError(t, store.SaveInsights(ctx, id, saved))

	loaded, err := store.LoadInsights(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, saved.Insights, loaded.Insights)
	require.NotNil(t, loaded.Summary)
	assert.Equal(t, summary, *loaded.Summary)
}

func TestLoadMissingArtifact(t *testing.T) {
	store := newStore(t)
	id := core.DatasetID(core.NewID())

	_, err := store.LoadSchema(context.Background(), id)
	assert.True(t, core.IsMissingArtifact(err))

	_, err = store.LoadProfile(context.Background(), id)
	assert.True(t, core.IsMissingArtifact(err))

	_, err = store.LoadDashboard(context.Background(), core.DashboardID(core.NewID()))
	assert.True(t, core.IsMissingArtifact(err))
}

func TestDashboardSaveLoadDelete(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	d := &dashboard.Dashboard{
		DashboardID: core.DashboardID(core.NewID()),
		DatasetID:   core.DatasetID(core.NewID()),
		Title:       "Auto Generated Dashboard",
		Widgets: []dashboard.Widget{
			dashboard.NewKPIWidget(dashboard.KPI{Name: "row_count", Metric: "Total Records", Value: 10, Format: "number"}),
			dashboard.NewChartWidget(dashboard.ChartSpec{
				ChartType: dashboard.ChartBar, X: "region", Y: "revenue",
				Aggregation: dashboard.AggregationMean,
			}, []dashboard.DataPoint{{X: "a", Y: 2}}),
		},
	}
	require.NoError(t, store.SaveDashboard(ctx, d))

	loaded, err := store.LoadDashboard(ctx, d.DashboardID)
	require.NoError(t, err)
	assert.Equal(t, d.Title, loaded.Title)
	require.Len(t, loaded.Widgets, 2)
	assert.Equal(t, dashboard.WidgetKPI, loaded.Widgets[0].Kind())
	assert.Equal(t, dashboard.WidgetChart, loaded.Widgets[1].Kind())

	require.NoError(t, store.DeleteDashboard(ctx, d.DashboardID))
	_, err = store.LoadDashboard(ctx, d.DashboardID)
	assert.True(t, core.IsMissingArtifact(err))

	// deleting again is not an error
	assert.NoError(t, store.DeleteDashboard(ctx, d.DashboardID))
}

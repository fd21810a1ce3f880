package pipeline

import (
	"bytes"
	"context"
	"testing"
	"time"

	"autodash/domain/core"
	"autodash/domain/dataset"
	"autodash/domain/profile"
	"autodash/domain/schema"
	"autodash/internal/assembler"
	"autodash/internal/insights"
	"autodash/internal/testkit"
	"autodash/internal/usage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProcessor(kit *testkit.Kit) *Processor {
	return NewProcessor(kit.Datasets, kit.Artifacts, kit.Metadata, usage.NewService(kit.Metadata), nil)
}

func TestIngestProcessesSalesDataset(t *testing.T) {
	kit := testkit.NewKit()
	proc := newProcessor(kit)
	ctx := context.Background()

	ds, err := proc.Ingest(ctx, "user-1", "sales.csv", bytes.NewReader(testkit.SalesCSV(50)))
	require.NoError(t, err)

	stored, err := kit.Metadata.GetDataset(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.StatusReady, stored.Status)
	assert.Equal(t, 50, stored.RecordCount)
	assert.Equal(t, 3, stored.FieldCount)
	assert.Empty(t, stored.ErrorMessage)

	sch, err := kit.Artifacts.LoadSchema(ctx, ds.ID)
	require.NoError(t, err)
	require.Len(t, sch.Columns, 3)

	date, ok := sch.Get("date")
	require.True(t, ok)
	assert.Equal(t, schema.TypeDatetime, date.Type)

	region, ok := sch.Get("region")
	require.True(t, ok)
	assert.Equal(t, schema.TypeCategorical, region.Type)
	assert.Equal(t, schema.CardinalityLow, region.Cardinality)

	revenue, ok := sch.Get("revenue")
	require.True(t, ok)
	assert.Equal(t, schema.TypeNumeric, revenue.Type)

	prof, err := kit.Artifacts.LoadProfile(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, prof.RowCount)

	stats, ok := prof.NumericByName("revenue")
	require.True(t, ok)
	assert.Equal(t, profile.TrendUp, stats.Trend)
	assert.Equal(t, 100.0, stats.Min)
	assert.Equal(t, 590.0, stats.Max)

	require.Eventually(t, func() bool {
		us, err := kit.Metadata.GetUserStats(ctx, "user-1")
		return err == nil && us.DatasetsUploaded == 1
	}, time.Second, 10*time.Millisecond)
}

func TestIngestUnsupportedFormatFails(t *testing.T) {
	kit := testkit.NewKit()
	proc := newProcessor(kit)
	ctx := context.Background()

	ds, err := proc.Ingest(ctx, "user-1", "data.parquet", bytes.NewReader([]byte("binary")))

	require.Error(t, err)
	assert.True(t, core.IsUnsupportedFormat(err))
	assert.True(t, core.IsProcessingFailed(err))
	require.NotNil(t, ds)

	stored, err := kit.Metadata.GetDataset(ctx, ds.ID)
	require.NoError(t, err)
	assert.Equal(t, dataset.StatusFailed, stored.Status)
	assert.NotEmpty(t, stored.ErrorMessage)
}

func TestProcessNormalizesColumnNames(t *testing.T) {
	kit := testkit.NewKit()
	proc := newProcessor(kit)
	ctx := context.Background()

	csv := "Order Date,Total Revenue\n2024-01-01,10\n2024-01-02,20\n2024-01-03,30\n2024-01-04,40\n2024-01-05,50\n"
	ds, err := proc.Ingest(ctx, "user-1", "orders.csv", bytes.NewReader([]byte(csv)))
	require.NoError(t, err)

	sch, err := kit.Artifacts.LoadSchema(ctx, ds.ID)
	require.NoError(t, err)
	require.Len(t, sch.Columns, 2)
	assert.Equal(t, "order_date", sch.Columns[0].Name)
	assert.Equal(t, "total_revenue", sch.Columns[1].Name)
}

func TestReprocessInvalidatesDashboardCache(t *testing.T) {
	kit := testkit.NewKit()
	usageSvc := usage.NewService(kit.Metadata)
	dashboards := assembler.New(kit.Datasets, kit.Artifacts, kit.Metadata, usageSvc)
	proc := NewProcessor(kit.Datasets, kit.Artifacts, kit.Metadata, usageSvc, dashboards)
	ctx := context.Background()

	ds, err := proc.Ingest(ctx, "user-1", "sales.csv", bytes.NewReader(testkit.SalesCSV(20)))
	require.NoError(t, err)

	first, err := dashboards.Generate(ctx, ds.ID)
	require.NoError(t, err)

	require.NoError(t, proc.Process(ctx, ds.ID))

	second, err := dashboards.Generate(ctx, ds.ID)
	require.NoError(t, err)
	assert.NotEqual(t, first.DashboardID, second.DashboardID)
}

func TestPipelineFeedsInsightGeneration(t *testing.T) {
	kit := testkit.NewKit()
	proc := newProcessor(kit)
	ctx := context.Background()

	ds, err := proc.Ingest(ctx, "user-1", "sales.csv", bytes.NewReader(testkit.SalesCSV(50)))
	require.NoError(t, err)

	svc := insights.NewService(kit.Artifacts, kit.Metadata, nil, usage.NewService(kit.Metadata))
	report, err := svc.Generate(ctx, ds.ID)
	require.NoError(t, err)

	messages := make([]string, 0, len(report.Insights))
	for _, ins := range report.Insights {
		messages = append(messages, ins.Message)
	}
	assert.Contains(t, messages, "revenue shows an upward trend over time")
	assert.Contains(t, messages, "Dataset has a relatively small number of records")
}

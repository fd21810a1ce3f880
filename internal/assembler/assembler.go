// Package assembler orchestrates KPI and chart generation into dashboard
// documents, materializes chart data from raw rows, and owns the bounded
// dashboard cache.
package assembler

import (
	"context"
	"fmt"

	"autodash/domain/core"
	"autodash/domain/dashboard"
	"autodash/internal"
	"autodash/internal/charts"
	"autodash/internal/kpi"
	"autodash/internal/usage"
	"autodash/ports"
)

// DefaultCacheSize bounds the dashboard recency cache
const DefaultCacheSize = 128

const dashboardTitle = "Auto Generated Dashboard"

// Assembler builds and persists dashboards for processed datasets.
// Concurrent generations for the same dataset are not mutually exclusive;
// both may run the full build and the pointer upsert decides the winner.
type Assembler struct {
	kpis      *kpi.Engine
	charts    *charts.Recommender
	datasets  ports.DatasetStore
	artifacts ports.ArtifactStore
	metadata  ports.MetadataStore
	usage     *usage.Service
	cache     *lruCache
}

// New creates a dashboard assembler with the default cache capacity
func New(datasets ports.DatasetStore, artifacts ports.ArtifactStore, metadata ports.MetadataStore, usageSvc *usage.Service) *Assembler {
	return NewWithCacheSize(datasets, artifacts, metadata, usageSvc, DefaultCacheSize)
}

// NewWithCacheSize creates a dashboard assembler with a custom cache capacity
func NewWithCacheSize(datasets ports.DatasetStore, artifacts ports.ArtifactStore, metadata ports.MetadataStore, usageSvc *usage.Service, cacheSize int) *Assembler {
	return &Assembler{
		kpis:      kpi.NewEngine(),
		charts:    charts.NewRecommender(),
		datasets:  datasets,
		artifacts: artifacts,
		metadata:  metadata,
		usage:     usageSvc,
		cache:     newLRUCache(cacheSize),
	}
}

// Generate returns the cached dashboard for the dataset or builds a new one:
// KPI widgets first, chart widgets after, each with a fresh widget id and
// the dashboard under a fresh dashboard id.
func (a *Assembler) Generate(ctx context.Context, datasetID core.DatasetID) (*dashboard.Dashboard, error) {
	if cached := a.cache.get(datasetID); cached != nil {
		return cached, nil
	}

	sch, err := a.artifacts.LoadSchema(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("loading schema for %s: %w", datasetID, err)
	}
	prof, err := a.artifacts.LoadProfile(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("loading profile for %s: %w", datasetID, err)
	}
	table, err := a.datasets.ReadTable(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("reading rows for %s: %w", datasetID, err)
	}

	widgets := []dashboard.Widget{}
	for _, k := range a.kpis.Generate(prof) {
		widgets = append(widgets, dashboard.NewKPIWidget(k))
	}
	for _, spec := range a.charts.Recommend(sch) {
		widgets = append(widgets, dashboard.NewChartWidget(spec, buildChartData(table, spec)))
	}

	d := &dashboard.Dashboard{
		DashboardID: core.DashboardID(core.NewID()),
		DatasetID:   datasetID,
		Title:       dashboardTitle,
		Widgets:     widgets,
	}

	if err := a.artifacts.SaveDashboard(ctx, d); err != nil {
		return nil, fmt.Errorf("persisting dashboard for %s: %w", datasetID, err)
	}

	ds, err := a.metadata.GetDataset(ctx, datasetID)
	switch {
	case err == nil:
		prev, err := a.metadata.UpsertDashboardPointer(ctx, datasetID, ds.UserID, d.DashboardID)
		if err != nil {
			return nil, fmt.Errorf("upserting dashboard pointer for %s: %w", datasetID, err)
		}
		// Reap the orphaned document the pointer no longer references
		if prev != "" && prev != d.DashboardID {
			if err := a.artifacts.DeleteDashboard(ctx, prev); err != nil {
				internal.DefaultLogger.Warn("[DashboardAssembler] failed to reap dashboard %s: %v", prev, err)
			}
		}
		a.usage.Increment(ctx, ds.UserID, ports.StatDashboardsCreated)
	case core.IsNotFoundError(err):
		// unregistered dataset: no owner to point at or count for
	default:
		return nil, fmt.Errorf("resolving owner for %s: %w", datasetID, err)
	}

	a.cache.put(datasetID, d)
	return d, nil
}

// Invalidate drops the cached dashboard for a dataset. The pipeline calls
// this whenever the dataset is reprocessed.
func (a *Assembler) Invalidate(datasetID core.DatasetID) {
	a.cache.invalidate(datasetID)
}

package insights

import (
	"context"
	"fmt"

	"autodash/domain/core"
	"autodash/domain/insight"
	"autodash/internal"
	"autodash/internal/kpi"
	"autodash/internal/usage"
	"autodash/ports"
)

// Service generates and persists insight reports. Summarization degrades to
// a nil summary on any collaborator failure; report persistence and usage
// tracking are side effects around the pure engine.
type Service struct {
	engine     *Engine
	kpis       *kpi.Engine
	artifacts  ports.ArtifactStore
	metadata   ports.MetadataStore
	summarizer ports.Summarizer
	usage      *usage.Service
}

// NewService creates an insight service. summarizer may be nil when no
// provider is configured.
func NewService(artifacts ports.ArtifactStore, metadata ports.MetadataStore, summarizer ports.Summarizer, usageSvc *usage.Service) *Service {
	return &Service{
		engine:     NewEngine(),
		kpis:       kpi.NewEngine(),
		artifacts:  artifacts,
		metadata:   metadata,
		summarizer: summarizer,
		usage:      usageSvc,
	}
}

// Generate builds the insight report for a dataset from its persisted schema
// and profile artifacts.
func (s *Service) Generate(ctx context.Context, datasetID core.DatasetID) (*insight.Report, error) {
	prof, err := s.artifacts.LoadProfile(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("loading profile for %s: %w", datasetID, err)
	}
	sch, err := s.artifacts.LoadSchema(ctx, datasetID)
	if err != nil {
		return nil, fmt.Errorf("loading schema for %s: %w", datasetID, err)
	}

	kpis := s.kpis.Generate(prof)
	generated := s.engine.Generate(prof, sch, kpis)

	report := &insight.Report{
		DatasetID:   datasetID,
		Insights:    generated,
		Summary:     s.summarize(ctx, generated),
		GeneratedAt: core.Now(),
	}

	if err := s.artifacts.SaveInsights(ctx, datasetID, report); err != nil {
		return nil, fmt.Errorf("persisting insights for %s: %w", datasetID, err)
	}

	ds, err := s.metadata.GetDataset(ctx, datasetID)
	switch {
	case err == nil:
		if err := s.metadata.UpsertInsightPointer(ctx, datasetID, ds.UserID, report.Summary != nil); err != nil {
			return nil, fmt.Errorf("upserting insight pointer for %s: %w", datasetID, err)
		}
		s.usage.Increment(ctx, ds.UserID, ports.StatInsightsGenerated)
	case core.IsNotFoundError(err):
		// unregistered dataset: no owner to point at or count for
	default:
		return nil, fmt.Errorf("resolving owner for %s: %w", datasetID, err)
	}

	return report, nil
}

// summarize requests an optional summary for a non-empty insight list.
// Provider failure never fails the caller.
func (s *Service) summarize(ctx context.Context, generated []insight.Insight) *string {
	if len(generated) == 0 || s.summarizer == nil {
		return nil
	}

	messages := make([]string, len(generated))
	for i, ins := range generated {
		messages[i] = ins.Message
	}

	summary, err := s.summarizer.Summarize(ctx, messages)
	if err != nil {
		internal.DefaultLogger.Warn("[InsightService] summarization degraded: %v", err)
		return nil
	}
	return summary
}

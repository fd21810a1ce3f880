// Package pipeline runs the per-dataset analysis pipeline: load raw rows,
// infer the schema and compute the profile, persist both as derived
// artifacts, and track lifecycle status. Each dataset's pipeline is one
// independent unit of work; a failed run is recorded as FAILED and is not
// retried automatically.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"autodash/domain/core"
	"autodash/domain/dataset"
	"autodash/internal"
	"autodash/internal/assembler"
	"autodash/internal/inference"
	"autodash/internal/profiling"
	"autodash/internal/usage"
	"autodash/ports"
)

// Processor executes the dataset analysis pipeline
type Processor struct {
	inferencer *inference.Inferencer
	profiler   *profiling.Profiler
	datasets   ports.DatasetStore
	artifacts  ports.ArtifactStore
	metadata   ports.MetadataStore
	usage      *usage.Service
	dashboards *assembler.Assembler
}

// NewProcessor creates a dataset processor. dashboards may be nil when no
// assembler cache needs invalidation (tests).
func NewProcessor(datasets ports.DatasetStore, artifacts ports.ArtifactStore, metadata ports.MetadataStore, usageSvc *usage.Service, dashboards *assembler.Assembler) *Processor {
	return &Processor{
		inferencer: inference.NewInferencer(),
		profiler:   profiling.NewProfiler(),
		datasets:   datasets,
		artifacts:  artifacts,
		metadata:   metadata,
		usage:      usageSvc,
		dashboards: dashboards,
	}
}

// Ingest registers an uploaded file and runs the full pipeline for it
func (p *Processor) Ingest(ctx context.Context, userID core.UserID, filename string, r io.Reader) (*dataset.Dataset, error) {
	ds := dataset.NewDataset(userID, filename)

	path, err := p.datasets.Save(ctx, ds.ID, filename, r)
	if err != nil {
		return nil, fmt.Errorf("storing upload %s: %w", filename, err)
	}
	ds.FilePath = path

	if err := p.metadata.CreateDataset(ctx, ds); err != nil {
		return nil, fmt.Errorf("registering dataset %s: %w", ds.ID, err)
	}

	if err := p.Process(ctx, ds.ID); err != nil {
		return ds, err
	}
	return ds, nil
}

// Process runs (or re-runs) the analysis pipeline for a registered dataset.
// On any failure the dataset transitions to the terminal FAILED state with
// the error message recorded; resubmission is external.
func (p *Processor) Process(ctx context.Context, datasetID core.DatasetID) error {
	if err := p.metadata.UpdateDatasetStatus(ctx, datasetID, dataset.StatusProcessing, ""); err != nil {
		return fmt.Errorf("marking dataset %s processing: %w", datasetID, err)
	}

	if err := p.run(ctx, datasetID); err != nil {
		if statusErr := p.metadata.UpdateDatasetStatus(ctx, datasetID, dataset.StatusFailed, err.Error()); statusErr != nil {
			internal.DefaultLogger.Error("[Pipeline] failed to record FAILED status for %s: %v", datasetID, statusErr)
		}
		return err
	}

	if err := p.metadata.UpdateDatasetStatus(ctx, datasetID, dataset.StatusReady, ""); err != nil {
		return fmt.Errorf("marking dataset %s ready: %w", datasetID, err)
	}

	if ds, err := p.metadata.GetDataset(ctx, datasetID); err == nil {
		p.usage.Increment(ctx, ds.UserID, ports.StatDatasetsUploaded)
	}

	// Any previously generated dashboard is stale once the dataset has been
	// reprocessed.
	if p.dashboards != nil {
		p.dashboards.Invalidate(datasetID)
	}

	return nil
}

// run executes the analysis stages. Failures carry core.ErrProcessingFailed
// with the stage that broke; ReadTable errors keep their own identity
// (unsupported format, not found) through the wrap.
func (p *Processor) run(ctx context.Context, datasetID core.DatasetID) error {
	table, err := p.datasets.ReadTable(ctx, datasetID)
	if err != nil {
		return core.NewProcessingError("load", err)
	}
	normalizeColumns(table)

	// Schema inference and profiling are independent stages over the same
	// immutable table; run them concurrently.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sch := p.inferencer.Infer(table)
		if err := p.artifacts.SaveSchema(gctx, datasetID, sch); err != nil {
			return fmt.Errorf("persisting schema: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		prof := p.profiler.Profile(table)
		if err := p.artifacts.SaveProfile(gctx, datasetID, prof); err != nil {
			return fmt.Errorf("persisting profile: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return core.NewProcessingError("analysis", err)
	}

	if err := p.metadata.UpdateDatasetCounts(ctx, datasetID, table.NumRows(), table.NumColumns()); err != nil {
		return core.NewProcessingError("finalize", fmt.Errorf("recording dataset counts: %w", err))
	}
	return nil
}

// normalizeColumns rewrites column names to snake_case form
func normalizeColumns(t *dataset.Table) {
	for i, name := range t.Columns {
		t.Columns[i] = strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	}
}
